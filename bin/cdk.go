package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/config"
	"github.com/30Piraten/serverless-monitoring/log"
)

func main() {
	if err := run(); err != nil {
		log.Get().Error("synthesis aborted", zap.Error(err))
		_ = log.Get().Sync()
		os.Exit(1)
	}
}

// run synthesizes both stacks. Stack constructors panic on invalid
// monitoring plans; the panic is turned into an error once the jsii
// runtime has been closed.
func run() (err error) {
	defer catch(&err)
	defer jsii.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetDebug(cfg.Debug)
	defer log.Get().Sync()

	app := awscdk.NewApp(nil)

	NewWebserviceStack(app, cfg.Webservice.StackName, &WebserviceStackProps{
		StackProps: awscdk.StackProps{Env: env(cfg)},
		Config:     cfg,
	})

	NewGraphQLStack(app, cfg.GraphQL.StackName, &GraphQLStackProps{
		StackProps: awscdk.StackProps{Env: env(cfg)},
		Config:     cfg,
	})

	app.Synth(nil)
	return nil
}

// catch stores a recovered panic in err.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = e
		return
	}
	*err = errors.Errorf("%v", r)
}

// env returns nil when no account is configured, leaving the stacks
// environment-agnostic.
func env(cfg *config.Config) *awscdk.Environment {
	if cfg.Account == "" {
		return nil
	}
	return &awscdk.Environment{
		Account: jsii.String(cfg.Account),
		Region:  jsii.String(cfg.Region),
	}
}
