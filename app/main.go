package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rbhz/tg-define/app/api"
	"github.com/rbhz/tg-define/app/bot"
	"github.com/rbhz/tg-define/app/clients/counter"
	"github.com/rbhz/tg-define/app/clients/dictionaryapi"
	"github.com/rbhz/tg-define/app/db"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/sync/errgroup"
)

type Opts struct {
	BotToken      string        `long:"bot-token" env:"BOT_TOKEN" required:"true" description:"Telegram bot token"`
	DictionaryURL string        `long:"dictionary-url" env:"DICTIONARY_URL" default:"https://api.dictionaryapi.dev/api/v2/entries/en" description:"Dictionary API base URL"`
	LookupTimeout time.Duration `long:"lookup-timeout" env:"LOOKUP_TIMEOUT" default:"10s" description:"Definition lookup timeout"`
	CounterURL    string        `long:"counter-url" env:"COUNTER_URL" description:"Lookup counter endpoint, counting is disabled when empty"`
	CounterSecret string        `long:"counter-secret" env:"COUNTER_SECRET" description:"Shared JWT secret of the counter API"`
	BoltDB        string        `long:"boltdb" env:"BOLTDB" default:"./define.data" description:"Path to BoltDB"`
	RedisURL      string        `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	Port          int           `long:"port" env:"PORT" default:"0" description:"Counter API port, 0 disables the API"`
	Debug         bool          `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func main() {
	var opts Opts
	_, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// Start counter API
	if opts.Port != 0 {
		storage, closeStorage := getStorage(opts)
		defer closeStorage()
		g.Go(func() error {
			return api.NewServer(storage, opts.CounterSecret).Run(gctx, opts.Port)
		})
	}

	var notifier bot.Notifier
	if opts.CounterURL != "" {
		notifier = counter.NewNotifier(counter.NewClient(opts.CounterURL, opts.CounterSecret), nil)
	}
	dispatcher := bot.NewDispatcher(
		dictionaryapi.NewClient(opts.DictionaryURL, opts.LookupTimeout),
		opts.LookupTimeout,
		notifier,
	)

	// initialize Telegram bot
	b, err := bot.NewTelegramBot(opts.BotToken, []bot.Handler{
		bot.StartHandler{},
		bot.NewChatMemberHandler(dispatcher),
		bot.NewPanelHandler(dispatcher),
		bot.NewDefineHandler(dispatcher),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	if err := dispatcher.Initialize(b); err != nil {
		log.Error().Err(err).Msg("failed to register define command")
	}
	g.Go(func() error {
		b.Start(gctx)
		dispatcher.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("stopped with error")
	}
}

func getStorage(opts Opts) (db.Storage, func()) {
	if opts.RedisURL != "" {
		redisStorage, err := db.NewRedisStorage(opts.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis client")
		}
		return redisStorage, func() {}
	}
	boltDB, err := bolt.Open(opts.BoltDB, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create boltDB database")
	}
	boltStorage, err := db.NewBoltStorage(boltDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bolt storage")
	}
	return boltStorage, func() {
		if err := boltDB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close boltDB database")
		}
	}
}
