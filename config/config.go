package config

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"
	sc "github.com/sksmith/go-spring-config"
	"github.com/spf13/viper"
)

const (
	AppName  = "Fulfillment"
	Revision = "1"
)

var (
	// Build time arguments
	AppVersion  string
	Sha1Version string
	BuildTime   string

	// Runtime flags
	profile        *string
	configSource   *string
	configUrl      *string
	configBranch   *string
	configUser     *string
	configPass     *string
	generateRoutes *bool
)

const maxConfigRetries = 5

type Config struct {
	AppName        string       `json:"appName"        yaml:"appName"`
	AppVersion     string       `json:"appVersion"     yaml:"appVersion"`
	Sha1Version    string       `json:"sha1Version"    yaml:"sha1Version"`
	BuildTime      string       `json:"buildTime"      yaml:"buildTime"`
	Profile        string       `json:"profile"        yaml:"profile"`
	Revision       string       `json:"revision"       yaml:"revision"`
	Port           string       `json:"port"           yaml:"port"`
	GenerateRoutes bool         `json:"generateRoutes" yaml:"generateRoutes"`
	Config         ConfigSource `json:"config"         yaml:"config"`
	Log            LogConfig    `json:"log"            yaml:"log"`
	Db             DbConfig     `json:"db"             yaml:"db"`
	RabbitMQ       QueueConfig  `json:"rabbitmq"       yaml:"rabbitmq"`
	Store          StoreConfig  `json:"store"          yaml:"store"`
}

type ConfigSource struct {
	Print  bool         `json:"print"  yaml:"print"`
	Source string       `json:"source" yaml:"source"`
	Spring SpringConfig `json:"spring" yaml:"spring"`
}

type SpringConfig struct {
	Url    string `json:"url"    yaml:"url"`
	Branch string `json:"branch" yaml:"branch"`
	User   string `json:"user"   yaml:"user"`
	Pass   string `json:"pass"   yaml:"pass" sensitive:"true"`
}

type LogConfig struct {
	Level      string `json:"level"      yaml:"level"`
	Structured bool   `json:"structured" yaml:"structured"`
}

type DbConfig struct {
	Name    string `json:"name"    yaml:"name"`
	Host    string `json:"host"    yaml:"host"`
	Port    string `json:"port"    yaml:"port"`
	User    string `json:"user"    yaml:"user"`
	Pass    string `json:"pass"    yaml:"pass" sensitive:"true"`
	Migrate bool   `json:"migrate" yaml:"migrate"`
	Clean   bool   `json:"clean"   yaml:"clean"`
	Pool    PoolConfig `json:"pool" yaml:"pool"`
}

type PoolConfig struct {
	MinSize int `json:"minSize" yaml:"minSize"`
	MaxSize int `json:"maxSize" yaml:"maxSize"`
}

type QueueConfig struct {
	Host        string            `json:"host"        yaml:"host"`
	Port        string            `json:"port"        yaml:"port"`
	User        string            `json:"user"        yaml:"user"`
	Pass        string            `json:"pass"        yaml:"pass" sensitive:"true"`
	Mock        bool              `json:"mock"        yaml:"mock"`
	Stock       ExchangeConfig    `json:"stock"       yaml:"stock"`
	Invoice     ExchangeConfig    `json:"invoice"     yaml:"invoice"`
	SupplyOrder ExchangeConfig    `json:"supplyOrder" yaml:"supplyOrder"`
	Model       ModelQueueConfig  `json:"model"       yaml:"model"`
}

type ExchangeConfig struct {
	Exchange string `json:"exchange" yaml:"exchange"`
}

type ModelQueueConfig struct {
	Queue string            `json:"queue" yaml:"queue"`
	Dlt   ModelDltConfig    `json:"dlt"   yaml:"dlt"`
}

type ModelDltConfig struct {
	Exchange string `json:"exchange" yaml:"exchange"`
}

// StoreConfig holds retail-level settings: which location checkouts reserve
// against and how many session carts are kept in memory.
type StoreConfig struct {
	LocationID       int64 `json:"locationId"       yaml:"locationId"`
	CartSessionLimit int   `json:"cartSessionLimit" yaml:"cartSessionLimit"`
}

func (c *Config) Print() {
	if c.Config.Print {
		log.Info().Interface("config", c).Msg("the following configurations have successfully loaded")
	}
}

func init() {
	profile = flag.String("p", "local", "profile for the application config")
	configSource = flag.String("s", "local", "where to get configurations from")
	configUrl = flag.String("cfgUrl", "", "url for application config server")
	configBranch = flag.String("cfgBranch", "", "branch to request from the configuration server (used for spring cloud config)")
	configUser = flag.String("cfgUser", "", "username to use when connecting to the application server")
	configPass = flag.String("cfgPass", "", "password to use when connecting to the application server")
	generateRoutes = flag.Bool("routes", false, "generate route documentation and exit")

	viper.SetDefault("port", "8080")
	viper.SetDefault("profile", "local")

	viper.SetDefault("config.print", false)

	viper.SetDefault("log.level", "trace")
	viper.SetDefault("log.structured", false)

	viper.SetDefault("db.name", "fulfillment-db")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.pass", "postgres")
	viper.SetDefault("db.migrate", true)
	viper.SetDefault("db.clean", false)
	viper.SetDefault("db.pool.minSize", 1)
	viper.SetDefault("db.pool.maxSize", 4)

	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", "5672")
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.pass", "guest")
	viper.SetDefault("rabbitmq.mock", false)
	viper.SetDefault("rabbitmq.stock.exchange", "stock.exchange")
	viper.SetDefault("rabbitmq.invoice.exchange", "invoice.exchange")
	viper.SetDefault("rabbitmq.supplyOrder.exchange", "supplyorder.exchange")
	viper.SetDefault("rabbitmq.model.queue", "model.queue")
	viper.SetDefault("rabbitmq.model.dlt.exchange", "model.dlt.exchange")

	viper.SetDefault("store.locationId", 1)
	viper.SetDefault("store.cartSessionLimit", 10000)
}

// LoadDefaults builds a config from defaults only, without parsing flags or
// reading any configuration source. Meant for tests.
func LoadDefaults() *Config {
	config := &Config{
		AppName:  AppName,
		Revision: Revision,
		Profile:  "local",
	}
	if err := viper.Unmarshal(config); err != nil {
		log.Fatal().Err(err).Msg("failed to load default configurations")
	}
	return config
}

func Load() *Config {
	flag.Parse()

	config := &Config{
		AppName:        AppName,
		AppVersion:     AppVersion,
		Sha1Version:    Sha1Version,
		BuildTime:      BuildTime,
		Revision:       Revision,
		Profile:        *profile,
		GenerateRoutes: *generateRoutes,
	}
	config.Config.Source = *configSource
	config.Config.Spring.Url = *configUrl
	config.Config.Spring.Branch = *configBranch
	config.Config.Spring.User = *configUser
	config.Config.Spring.Pass = *configPass

	var err error
	switch *configSource {
	case "local":
		err = loadLocalConfigs(config)
	case "spring":
		err = loadRemoteConfigs(config)
	default:
		log.Warn().
			Str("configSource", *configSource).
			Msg("unrecognized configuration source, using local")

		err = loadLocalConfigs(config)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configurations")
	}

	return config
}

func loadLocalConfigs(config *Config) error {
	log.Info().Msg("loading local configurations...")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		log.Warn().Msg("no local config file found, using defaults")
	}

	return viper.Unmarshal(config)
}

func loadRemoteConfigs(config *Config) error {
	log.Info().Str("url", config.Config.Spring.Url).Msg("loading remote configurations...")

	var remote *sc.Config
	var err error
	for tryCount := 1; tryCount <= maxConfigRetries; tryCount++ {
		remote, err = sc.LoadWithCreds(
			config.Config.Spring.Url,
			AppName,
			config.Config.Spring.Branch,
			config.Config.Spring.User,
			config.Config.Spring.Pass,
			config.Profile)
		if err == nil {
			break
		}
		log.Error().Err(err).Msg("failed to load configurations... retrying")
		time.Sleep(5 * time.Second)
	}
	if err != nil {
		return err
	}

	if err = viper.MergeConfigMap(remote.Values); err != nil {
		return err
	}

	return viper.Unmarshal(config)
}
