package cmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/searchfluent/elastic-data-api/config"
	"github.com/searchfluent/elastic-data-api/dsl"
	"github.com/searchfluent/elastic-data-api/endpoint"
	"github.com/searchfluent/elastic-data-api/log"
	"github.com/searchfluent/elastic-data-api/rest/models"
	"github.com/searchfluent/elastic-data-api/rest/translator"
)

// Environment variables prefixed with "ELASTIC_API_" can override settings e.g. "ELASTIC_API_HOSTS"
const envVarPrefix = "elastic_api"

var cfgFile string
var logger log.Logger

var rootCmd = &cobra.Command{
	Use:   os.Args[0] + " [serve|compile] [OPTIONS]",
	Short: "Fluent search endpoint and query compiler for Elasticsearch",
}

var serveCmd = &cobra.Command{
	Use:   "serve --hosts [HOSTS] [OPTIONS]",
	Short: "Start the REST search endpoint",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(getStringSlice("hosts")) == 0 {
			return errors.New("hosts are required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		searchEndpoint := createEndpoint()

		handler := http.Handler(searchEndpoint.Router())
		if viper.GetBool("request-logging") {
			handler = log.NewLoggingHandler(handler, logger)
		}

		port := viper.GetInt("port")
		logger.Info("server listening", "port", port)
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler); err != nil {
			logger.Fatal("unable to start server",
				"port", port,
				"error", err)
		}
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile --index [INDEX] [FILE]",
	Short: "Compile a search request model into its Query DSL body",
	Long: "Reads a JSON search request model from FILE (or stdin) and prints " +
		"the request body that would be sent to the cluster, without executing it.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := os.Stdin
		if len(args) == 1 {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			reader = file
		}

		var model models.SearchRequest
		if err := json.NewDecoder(reader).Decode(&model); err != nil {
			return fmt.Errorf("unable to decode search request model: %w", err)
		}

		apiTranslator := translator.APITranslator{
			Index:  viper.GetString("index"),
			Naming: namingConvention(),
		}
		query, err := apiTranslator.ToQuery(model)
		if err != nil {
			return err
		}

		request, err := dsl.NewBuilder(viper.GetInt("version")).Build(query)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(request.Body, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

// Execute starts the CLI.
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.StringSliceP("hosts", "t", nil, "hosts for connecting to the cluster")
	flags.Int("version", endpoint.DefaultVersion, "server major version targeted by the compiler")
	flags.Int("port", 8080, "port to bind the endpoint to")
	flags.String("index", "", "index addressed by the compile command")
	flags.Bool("request-logging", false, "enable request logging")
	flags.Bool("snake-case-fields", false, "map camelCase request fields to snake_case document fields")
	flags.Duration("request-timeout", endpoint.DefaultRequestTimeout, "HTTP timeout for cluster requests")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, compileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createEndpoint() *endpoint.SearchEndpoint {
	cfg := endpoint.NewEndpointConfigWithLogger(logger, getStringSlice("hosts")...)

	cfg.
		WithVersion(viper.GetInt("version")).
		WithRequestTimeout(viper.GetDuration("request-timeout")).
		WithNaming(namingConvention())

	searchEndpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable to create endpoint",
			"error", err)
	}
	return searchEndpoint
}

func namingConvention() config.NamingConvention {
	if viper.GetBool("snake-case-fields") {
		return config.NewSnakeCaseNaming()
	}
	return config.NewIdentityNaming()
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

// toStringSlice normalizes a value that may arrive as a single
// comma-separated string from an environment variable.
func toStringSlice(value []string) ([]string, error) {
	if len(value) != 1 || !strings.Contains(value[0], ",") {
		return value, nil
	}
	return csv.NewReader(strings.NewReader(value[0])).Read()
}
