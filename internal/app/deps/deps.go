package deps

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"blog/internal/config"
	"blog/internal/core/domain/blog"
	dl "blog/internal/core/domain/logging"
	drl "blog/internal/core/domain/rate_limiter"
	duow "blog/internal/core/domain/unit_of_work"
	"blog/internal/core/domain/user"
	"blog/internal/core/services/captcha"
	"blog/internal/db"
	dbblog "blog/internal/db/blog"
	dbsession "blog/internal/db/session"
	uow "blog/internal/db/unit_of_work"
	dbuser "blog/internal/db/user"
	actiontoken "blog/internal/implementations/action_token"
	backgroundsender "blog/internal/implementations/background_sender"
	"blog/internal/implementations/email"
	"blog/internal/implementations/links"
	"blog/internal/implementations/logging"
	passwordhasher "blog/internal/implementations/password_hasher"
	randomstringgenerator "blog/internal/implementations/random_string_generator"
	ratelimiter "blog/internal/implementations/rate_limiter"
	"blog/internal/implementations/recaptcha"
	"blog/internal/implementations/session"
	"blog/internal/rabbitmq"
	notificationpublisher "blog/internal/rabbitmq/publishers/notification"

	"github.com/alexedwards/scs/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection
	Sessions *scs.SessionManager

	Now func() time.Time

	UnitOfWork         duow.UnitOfWork
	UserRepository     user.UserRepository
	CategoryRepository blog.CategoryRepository
	BlogRepository     blog.BlogRepository

	RateLimiter drl.RateLimiter

	EmailSender        *email.EmailSender
	NotificationSender user.NotificationSender
	// Used where the response must not reveal how long the delivery took.
	BackgroundNotificationSender *backgroundsender.Sender
	ActionLinkBuilder            user.ActionLinkBuilder

	PasswordHasher   user.PasswordHasher
	TokenService     user.TokenService
	SessionManager   user.SessionManager
	CaptchaValidator captcha.CaptchaValidator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig(config.Load)
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeSessions := deps.initSessionManager()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.CategoryRepository = dbblog.NewPgxCategoryRepository(deps.DB)
	deps.BlogRepository = dbblog.NewPgxBlogRepository(deps.DB)

	deps.initEmailSender()

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.TokenService = actiontoken.NewHMAC(
		deps.Config.Secret,
		randomstringgenerator.NewGenerator(),
		deps.Config.ConfirmEmailValidDurationHours,
		deps.Config.PasswordResetValidDurationHours,
		deps.Now,
	)
	deps.SessionManager = session.NewSCS(deps.Sessions, deps.PasswordHasher)
	deps.CaptchaValidator = deps.initCaptchaValidator()
	deps.initActionLinkBuilder()

	closeNotificationSender := deps.initNotificationSender()
	waitBackgroundSender := deps.initBackgroundNotificationSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		// Deliveries still in flight need the notification sender.
		waitBackgroundSender()

		closeFuncs := []func(){
			closeNotificationSender,
			closeSessions,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

// InitMailerDeps builds only what cmd/mailer needs: the notification queue and SES.
func InitMailerDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig(config.LoadMailer)
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.initEmailSender()
	closeRabbitmqConn := deps.InitRabbitmqConnection()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeRabbitmqConn()
		flushSentry()
		closeLogger()
	}
}

func (deps *Deps) initConfig(load func() (*config.Config, error)) {
	config, err := load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if !deps.Config.MigrateOnStart {
		return
	}
	if err := db.ApplyMigrations(deps.Config.MigrationsPath, deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "Migrations have been applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSessionManager() func() {
	store := dbsession.NewPgxStore(deps.DB, deps.Logger, deps.Config.SessionCleanupInterval)

	manager := scs.New()
	manager.Store = store
	manager.Lifetime = deps.Config.SessionLifetime
	manager.Cookie.Name = "blog_session"
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = !deps.Config.IsTestMode
	manager.Cookie.Persist = false
	manager.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		deps.Logger.Error(r.Context(), "Session error.", dl.Entry("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	deps.Sessions = manager

	return func() {
		deps.Logger.Info(context.Background(), "Stopping session cleanup.")
		store.StopCleanup()
		deps.Logger.Info(context.Background(), "Session cleanup stopped.")
	}
}

func (deps *Deps) initEmailSender() {
	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		email.Templates{
			ConfirmEmail:  deps.Config.AwsEmailConfirmEmailTemplate,
			ResetPassword: deps.Config.AwsEmailResetPasswordTemplate,
		},
	)
}

func (deps *Deps) initActionLinkBuilder() {
	builder, err := links.NewBuilder(deps.Config.PublicBaseURL)
	if err != nil {
		panic(err)
	}
	deps.ActionLinkBuilder = builder
}

// initNotificationSender sends account emails through SES directly,
// or queues them for cmd/mailer when RabbitMQ transport is configured.
func (deps *Deps) initNotificationSender() func() {
	if !deps.Config.UsesRabbitmq() {
		deps.NotificationSender = deps.EmailSender
		return func() {}
	}

	closeRabbitmqConn := deps.InitRabbitmqConnection()
	rabbitmqChannel := deps.InitNotificationChannel()

	deps.NotificationSender = notificationpublisher.NewRabbitMQ(deps.Logger, rabbitmqChannel)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notification publisher.")
		rabbitmqChannel.Close()
		closeRabbitmqConn()
		deps.Logger.Info(context.Background(), "Notification publisher shut down.")
	}
}

func (deps *Deps) initBackgroundNotificationSender() func() {
	sender := backgroundsender.New(deps.Logger, deps.NotificationSender, 30*time.Second)
	deps.BackgroundNotificationSender = sender
	return func() {
		deps.Logger.Info(context.Background(), "Waiting for background notifications.")
		sender.Wait()
		deps.Logger.Info(context.Background(), "Background notifications finished.")
	}
}

func (deps *Deps) InitRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

// InitNotificationChannel opens a channel with the notification exchange and queue declared.
func (deps *Deps) InitNotificationChannel() *rabbitmq.Channel {
	rabbitmqChannel, err := deps.Rabbitmq.Channel(rabbitmq.Topology{
		Exchange:   deps.Config.RabbitmqNotificationExchange,
		Queue:      deps.Config.RabbitmqNotificationQueue,
		RoutingKey: deps.Config.RabbitmqNotificationRK,
	})
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	return rabbitmqChannel
}

func (deps *Deps) initCaptchaValidator() captcha.CaptchaValidator {
	if deps.Config.IsTestMode {
		return captcha.NewAllowAlwaysCaptchaValidator()
	}
	return recaptcha.New(
		deps.Logger,
		deps.Config.GoogleRecaptchaSecretKey,
		deps.Config.GoogleRecaptchaScoreThreshold,
		deps.Config.GoogleRecaptchaRequestTimeout,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
