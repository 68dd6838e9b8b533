package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/weareasocialyazilim/travelmatch-moderation/adapters/remote"
	"github.com/weareasocialyazilim/travelmatch-moderation/adapters/storage"
	"github.com/weareasocialyazilim/travelmatch-moderation/api"
	"github.com/weareasocialyazilim/travelmatch-moderation/core"
)

type Config struct {
	ServiceName string `toml:"serviceName"`

	HTTPAddr string `toml:"httpAddr"`
	LogLevel string `toml:"logLevel"`

	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`

	WordListURL  string `toml:"wordListURL"`
	SyncInterval string `toml:"syncInterval"`
}

func main() {
	var (
		configPath  string
		httpAddr    string
		logLevel    string
		kafkaAddr   string
		kafkaTopic  string
		kafkaBatch  int
		wordListURL string
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&httpAddr, "http", ":8060", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic for moderation audit entries.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.StringVar(&wordListURL, "wordlist", "", "Base URL of the remote custom word list service.")
	flag.Parse()

	// Secrets come from the environment; a local .env is optional.
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Fatalf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}
	if wordListURL != "" {
		cfg.WordListURL = wordListURL
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	coreOpts := core.Options{
		Storage: storage.NewMemoryAdapter(),
	}

	if cfg.WordListURL != "" {
		source, err := remote.NewWordListAdapter(remote.Options{
			BaseURL: cfg.WordListURL,
			APIKey:  os.Getenv("WORDLIST_API_KEY"),
		})
		if err != nil {
			log.Fatalf("[server] failed to create word list source: %v", err)
		}
		coreOpts.Source = source
	}
	if cfg.SyncInterval != "" {
		interval, err := time.ParseDuration(cfg.SyncInterval)
		if err != nil {
			log.Fatalf("[server] invalid syncInterval %q: %v", cfg.SyncInterval, err)
		}
		coreOpts.SyncInterval = interval
	}

	moderation := core.New(coreOpts)

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	if coreOpts.Source != nil {
		// Run performs the initial sync itself before ticking.
		go func() {
			if err := moderation.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("[server] word list sync stopped: %v", err)
			}
		}()
	} else {
		log.Warn("[server] no remote word list configured, custom words start empty")
	}

	var kafkaWriter *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kafkaWriter = &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		err := createTopic(kafkaWriter.Addr.String(), kafkaWriter.Topic)
		if err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
	} else {
		log.Warnf("[server] kafka was not configured, audit entries will not be sent to Kafka")
	}

	api, err := api.New(cfg.ServiceName, moderation, kafkaWriter)
	if err != nil {
		log.Fatalf("[server] failed to create API: %v", err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	runCancel()

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
