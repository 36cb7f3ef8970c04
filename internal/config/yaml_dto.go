package config

type YAMLConfig struct {
	NameCom    YAMLNameCom    `yaml:"namecom"`
	Cloudflare YAMLCloudflare `yaml:"cloudflare"`
	Provision  YAMLProvision  `yaml:"provision"`
	Check      YAMLCheck      `yaml:"check"`
	Log        YAMLLog        `yaml:"log"`

	Store   string `yaml:"store"`
	Timeout string `yaml:"timeout"`
}

type YAMLNameCom struct {
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
	BaseURL  string `yaml:"base_url"`
}

type YAMLCloudflare struct {
	Email   string `yaml:"email"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type YAMLProvision struct {
	ServerIP string   `yaml:"server_ip"`
	MaxPrice *float64 `yaml:"max_price"`
	Cycles   *int     `yaml:"cycles"`
	Phrase   string   `yaml:"phrase"`
}

type YAMLCheck struct {
	Timeout string `yaml:"timeout"`
}

type YAMLLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
