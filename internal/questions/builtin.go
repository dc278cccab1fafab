package questions

import (
	"fmt"
	"strings"
	"unicode"
)

type seed struct {
	text       string
	difficulty Difficulty
	keywords   []string
}

var builtinSeeds = map[string][]seed{
	"Core Software Engineer": {
		{"What is the difference between stack and heap memory?", DifficultyEasy, []string{"Stack", "Heap", "Static", "Dynamic", "Memory"}},
		{"Explain what a loop is and its basic types.", DifficultyEasy, []string{"For", "While", "Iteration", "Condition", "Break"}},
		{"Describe common data structures and their use cases.", DifficultyEasy, []string{"Array", "LinkedList", "Queue", "Stack", "Tree"}},
		{"What is Object-Oriented Programming and its main principles?", DifficultyMedium, []string{"Inheritance", "Encapsulation", "Polymorphism", "Classes", "Objects"}},
		{"Explain the concept of memory management in programming languages.", DifficultyMedium, []string{"Stack", "Heap", "Garbage Collection", "Memory Leak", "Allocation"}},
		{"What are design patterns and why are they important?", DifficultyMedium, []string{"Singleton", "Factory", "Observer", "Reusability", "Architecture"}},
		{"How would you design a distributed caching system?", DifficultyHard, []string{"Consistency", "Partitioning", "Replication", "Latency", "Scalability"}},
		{"Explain advanced concurrency patterns and their trade-offs.", DifficultyHard, []string{"Mutex", "Deadlock", "Threading", "Synchronization", "Race Condition"}},
	},
	"Frontend Developer": {
		{"What is HTML semantic markup and why is it important?", DifficultyEasy, []string{"Accessibility", "SEO", "Header", "Nav", "Semantic"}},
		{"Explain CSS box model and basic layout concepts.", DifficultyEasy, []string{"Margin", "Padding", "Border", "Content", "Box-sizing"}},
		{"Explain the Virtual DOM and its benefits.", DifficultyEasy, []string{"Performance", "Reconciliation", "React", "Rendering", "DOM"}},
		{"What are CSS preprocessors and their advantages?", DifficultyMedium, []string{"SASS", "Variables", "Nesting", "Mixins", "Compilation"}},
		{"Describe the concept of state management in frontend applications.", DifficultyMedium, []string{"Redux", "Store", "Actions", "State", "Immutability"}},
		{"Explain modern JavaScript module systems and bundling.", DifficultyMedium, []string{"ESModules", "Webpack", "Import", "Export", "Tree-shaking"}},
		{"Design a scalable frontend architecture for a large enterprise app.", DifficultyHard, []string{"Microfrontends", "Performance", "Caching", "Authentication", "Modular"}},
		{"Implement advanced React patterns and optimizations.", DifficultyHard, []string{"HOC", "Hooks", "Memoization", "Suspense", "Code-splitting"}},
	},
	"Backend Developer": {
		{"What is CRUD and how is it used in APIs?", DifficultyEasy, []string{"Create", "Read", "Update", "Delete", "API"}},
		{"Explain basic HTTP methods and status codes.", DifficultyEasy, []string{"GET", "POST", "PUT", "DELETE", "Status"}},
		{"Describe RESTful API design principles.", DifficultyEasy, []string{"Stateless", "Resources", "HTTP", "Endpoints", "Methods"}},
		{"What are the basics of database indexing?", DifficultyMedium, []string{"Index", "Query", "Performance", "Primary Key", "Search"}},
		{"Explain the differences between SQL and NoSQL databases.", DifficultyMedium, []string{"Scalability", "Schema", "ACID", "Document", "Relational"}},
		{"Describe microservices architecture patterns.", DifficultyMedium, []string{"Services", "Communication", "Gateway", "Docker", "Deployment"}},
		{"Design a high-throughput message processing system.", DifficultyHard, []string{"Kafka", "Queue", "Scaling", "Partitioning", "Consistency"}},
		{"Implement advanced database sharding strategies.", DifficultyHard, []string{"Sharding", "Replication", "Consistency", "Distribution", "Failover"}},
	},
	"AI/ML Engineer": {
		{"What is the difference between AI, ML, and Deep Learning?", DifficultyEasy, []string{"Artificial", "Machine", "Neural", "Data", "Learning"}},
		{"Explain basic data preprocessing steps.", DifficultyEasy, []string{"Cleaning", "Normalization", "Features", "Missing", "Scaling"}},
		{"Explain the difference between supervised and unsupervised learning.", DifficultyEasy, []string{"Labels", "Clustering", "Classification", "Training", "Dataset"}},
		{"What are common evaluation metrics in ML?", DifficultyMedium, []string{"Accuracy", "Precision", "Recall", "F1-Score", "ROC"}},
		{"Describe how neural networks work.", DifficultyMedium, []string{"Neurons", "Layers", "Weights", "Backpropagation", "Activation"}},
		{"Explain different types of CNN architectures.", DifficultyMedium, []string{"Convolution", "Pooling", "ResNet", "VGG", "Features"}},
		{"Design an end-to-end ML pipeline for production.", DifficultyHard, []string{"Pipeline", "Monitoring", "Deployment", "Version", "Scale"}},
		{"Implement advanced NLP transformer architectures.", DifficultyHard, []string{"Attention", "BERT", "Embedding", "Transfer", "Fine-tuning"}},
	},
	"Cloud Engineer": {
		{"What are the basic cloud service models?", DifficultyEasy, []string{"IaaS", "PaaS", "SaaS", "Cloud", "Service"}},
		{"Explain basic cloud storage types.", DifficultyEasy, []string{"Block", "Object", "File", "Storage", "Persistence"}},
		{"Explain the concept of containerization and its benefits.", DifficultyEasy, []string{"Docker", "Isolation", "Microservices", "Portability", "Orchestration"}},
		{"What is Infrastructure as Code?", DifficultyMedium, []string{"Terraform", "Automation", "Configuration", "Version", "Deploy"}},
		{"Describe the principles of cloud-native architecture.", DifficultyMedium, []string{"Scalability", "Containers", "Microservices", "DevOps", "Automation"}},
		{"Explain cloud security best practices.", DifficultyMedium, []string{"IAM", "Encryption", "Security Groups", "Compliance", "Monitoring"}},
		{"Design a multi-region disaster recovery solution.", DifficultyHard, []string{"Failover", "Replication", "RTO", "RPO", "Backup"}},
		{"Implement advanced Kubernetes operators and CRDs.", DifficultyHard, []string{"Kubernetes", "Operator", "Custom", "Controller", "Resources"}},
	},
}

// Builtin returns a fresh copy of the bundled question catalog.
func Builtin() Catalog {
	catalog := make(Catalog, len(builtinSeeds))
	for role, seeds := range builtinSeeds {
		bank := &Bank{Items: make([]*Question, 0, len(seeds))}
		for i, s := range seeds {
			bank.Items = append(bank.Items, &Question{
				ID:               QuestionID(role, i),
				Text:             s.text,
				Difficulty:       s.difficulty,
				RequiredKeywords: append([]string(nil), s.keywords...),
			})
		}
		catalog[role] = bank
	}
	return catalog
}

// QuestionID builds the stable id of the n-th (zero based) question of a role.
func QuestionID(role string, n int) string {
	return fmt.Sprintf("%s-%02d", Slug(role), n+1)
}

// Slug lower-cases a label and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}
