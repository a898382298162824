package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/amp-labs/fsmgine"
	"github.com/amp-labs/fsmgine/telemetry"
)

const quitChoice = "quit"

// runSim drives a YAML-defined machine interactively. Predicate names double
// as event names: a predicate passes when the typed event equals its name, so
// any config is runnable without writing code.
func runSim(args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	configPath := fs.String("config", "", "machine config YAML (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath == "" {
		return errors.New("sim requires -config")
	}

	ctx := context.Background()

	otelConfig, err := telemetry.LoadConfigFromEnv(os.Getenv("ENVIRONMENT"))
	if err != nil {
		return err
	}

	if err := telemetry.Initialize(ctx, otelConfig); err != nil {
		return err
	}

	defer func() {
		_ = telemetry.Shutdown(ctx)
	}()

	config, err := fsmgine.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	machine, events, err := buildSimMachine(config)
	if err != nil {
		return err
	}

	fmt.Printf("Simulating %s. Pick %q to exit.\n", config.Name, quitChoice)

	for {
		state, err := machine.CurrentState()
		if err != nil {
			return err
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("State %s, next event", state),
			Items: append(append([]string{}, events...), quitChoice),
		}

		_, event, err := prompt.Run()
		if err != nil {
			// Interrupt behaves like quit.
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			return fmt.Errorf("reading event: %w", err)
		}

		if event == quitChoice {
			return nil
		}

		fired, err := machine.Process(event)
		if err != nil {
			return err
		}

		next, err := machine.CurrentState()
		if err != nil {
			return err
		}

		if fired {
			fmt.Printf("  %s -> %s\n", state, next)
		} else {
			fmt.Printf("  no transition matched %q, still %s\n", event, state)
		}
	}
}

// buildSimMachine binds every referenced predicate to event-name equality and
// every action and hook to a line of output, then builds the machine.
func buildSimMachine(config *fsmgine.Config) (*fsmgine.FSM[string], []string, error) {
	reg := fsmgine.NewRegistry[string]()

	var events []string

	seenPredicates := make(map[string]struct{})
	registerPredicate := func(name string) {
		if _, ok := seenPredicates[name]; ok {
			return
		}

		seenPredicates[name] = struct{}{}
		events = append(events, name)
		reg.RegisterPredicate(name, func(event string) bool { return event == name })
	}

	seenActions := make(map[string]struct{})
	registerAction := func(name string) {
		if _, ok := seenActions[name]; ok {
			return
		}

		seenActions[name] = struct{}{}
		reg.RegisterAction(name, func(string) {
			fmt.Printf("  action: %s\n", name)
		})
	}

	for _, tr := range config.Transitions {
		for _, p := range tr.Predicates {
			registerPredicate(p)
		}

		for _, a := range tr.Actions {
			registerAction(a)
		}
	}

	for _, state := range config.States {
		for _, a := range state.OnEnter {
			registerAction(a)
		}

		for _, a := range state.OnExit {
			registerAction(a)
		}
	}

	var opts []fsmgine.Option
	if os.Getenv("FSMGINE_SIM_DEBUG") != "" {
		opts = append(opts, fsmgine.WithLogger(fsmgine.NewSlogLogger(nil)))
	}

	machine, err := fsmgine.Build(config, reg, opts...)
	if err != nil {
		return nil, nil, err
	}

	return machine, events, nil
}
