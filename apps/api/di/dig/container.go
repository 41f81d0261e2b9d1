package dig_container

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/apar/apps/api/echo"
	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
	"github.com/trezcool/apar/services/apiclient"
	logsvc "github.com/trezcool/apar/services/logger"
	metricsvc "github.com/trezcool/apar/services/metrics"
	notifysvc "github.com/trezcool/apar/services/notify"
	inmemdb "github.com/trezcool/apar/storage/database/inmem"
)

type RemoteLoggerParam struct {
	dig.In
	Logger core.Logger `name:"remoteLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newRemoteLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "REMOTE : ", log.LstdFlags|log.Lmicroseconds)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newSubmitter(conf *core.Config, loggerParam RemoteLoggerParam) assessment.Submitter {
	return metricsvc.NewSubmitter(apiclient.NewClient(conf, loggerParam.Logger), prometheus.DefaultRegisterer)
}

func newNotifier(logger core.Logger, inbox *notifysvc.Inbox) assessment.Notifier {
	return notifysvc.Multi{notifysvc.NewLogNotifier(logger), inbox}
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	svc *assessment.Service,
	inbox *notifysvc.Inbox,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Service:    svc,
		Inbox:      inbox,
		Validate:   validate,
		Translator: translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newRemoteLogger, dig.Name("remoteLogger")))
	must(c.Provide(inmemdb.Open))
	must(c.Provide(inmemdb.NewAssessmentRepository))
	must(c.Provide(newSubmitter))
	must(c.Provide(notifysvc.NewInbox))
	must(c.Provide(newNotifier))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(assessment.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
