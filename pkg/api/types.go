package api

const (
	DefaultArtifact   = "feed.xml"
	DefaultStagingDir = "public"
	DefaultModel      = "gemini-1.5-flash"
	DefaultRunAt      = "22:00"
	DefaultMaxResults = 5
	DefaultDepth      = "basic"
	DefaultWorkers    = 4
	DefaultMaxItems   = 50
	DefaultMinContent = 200
	DefaultBranch     = "gh-pages"

	StepTypeSearch  = "search"
	StepTypeHarvest = "harvest"
	StepTypeCompose = "compose"
	StepTypeStage   = "stage"
	StepTypePublish = "publish"

	ExtractorJina  = "jina"
	ExtractorLocal = "local"
)

// Workflow is the newsfeed.yaml configuration format.
type Workflow struct {
	Feed       FeedConfig       `yaml:"feed"`
	Search     SearchConfig     `yaml:"search"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Schedule   string           `yaml:"schedule"`
	Pipeline   []StepConfig     `yaml:"pipeline"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// FeedConfig holds the RSS channel metadata.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

// SearchConfig configures the web search queries.
type SearchConfig struct {
	Queries    []string `yaml:"queries"`
	MaxResults int      `yaml:"maxResults"`
	Depth      string   `yaml:"depth"`
}

// ClassifierConfig configures the LLM classification call.
type ClassifierConfig struct {
	Model  string `yaml:"model"`
	Prompt string `yaml:"prompt"`
}

// StepConfig defines a single step within the pipeline.
type StepConfig struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Harvest *HarvestConfig `yaml:"harvest,omitempty"`
	Compose *ComposeConfig `yaml:"compose,omitempty"`
	Stage   *StageConfig   `yaml:"stage,omitempty"`
	Publish *PublishConfig `yaml:"publish,omitempty"`
}

// HarvestConfig configures the harvest step.
type HarvestConfig struct {
	Workers          int    `yaml:"workers"`
	Extractor        string `yaml:"extractor"`
	MinContentLength int    `yaml:"minContentLength"`
}

// ComposeConfig configures the compose step.
type ComposeConfig struct {
	Output        string `yaml:"output"`
	MaxItems      int    `yaml:"maxItems"`
	MergePrevious bool   `yaml:"mergePrevious"`
}

// StageConfig configures the stage step.
type StageConfig struct {
	Dir       string   `yaml:"dir"`
	Artifacts []string `yaml:"artifacts"`
	Include   []string `yaml:"include"`
}

// PublishConfig configures the publish step.
type PublishConfig struct {
	Remote   string `yaml:"remote"`
	Branch   string `yaml:"branch"`
	BotName  string `yaml:"botName"`
	BotEmail string `yaml:"botEmail"`
	Message  string `yaml:"message"`
}
