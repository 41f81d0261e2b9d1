package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
	"github.com/trezcool/apar/services/apiclient"
	logsvc "github.com/trezcool/apar/services/logger"
	inmemdb "github.com/trezcool/apar/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	// logs go to stderr so they do not interleave with the wizard itself
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "WIZARD : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	out := newConsole(os.Stdout)
	svc := assessment.NewService(
		inmemdb.NewAssessmentRepository(inmemdb.Open()),
		apiclient.NewClient(conf, logger),
		out,
		validate,
		translator,
	)

	cli := &commandLine{
		svc:    svc,
		out:    out,
		logger: logger,
		person: core.Person{ID: conf.Remote.Faculty, Name: conf.Remote.Faculty},
	}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := cli.run(context.Background(), os.Stdin, interactive); err != nil {
		logger.Fatal(fmt.Sprintf("wizard: %v", err), err, cli.person)
	}
}
