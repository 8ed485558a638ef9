// Package mcvisor supervises a Minecraft server process and turns its console
// output into typed events.
//
// This package allows you to:
//   - Classify server log lines into login, logout, death, chat and generic events
//   - Subscribe handlers to those events, with regex filters for chat
//   - Send typed console commands (/say, /tell, /gamemode, ...) to the server
//   - Run and stop the server process itself
//
// # Basic Usage
//
// To run a server and greet players as they join:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	srv, err := mcvisor.NewServer("minecraft_server.jar",
//	    mcvisor.WithDir("/srv/minecraft"),
//	    mcvisor.WithOutput(os.Stdout),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv.OnLogin(func(ev mcvisor.Event) error {
//	    return srv.Say("Welcome, " + ev.Player)
//	})
//	srv.OnChat(mcvisor.ChatFilter{Pattern: `!time`}, func(ev mcvisor.Event) error {
//	    return srv.SetTime("day")
//	})
//
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// To classify a single log line:
//
//	ev, err := mcvisor.ParseLine("[12:34:56] [Server thread/INFO]: <Steve> hello")
//	if err != nil {
//	    log.Printf("parse error: %v", err)
//	} else {
//	    fmt.Println(ev.Kind, ev.Player, ev.Text) // chat Steve hello
//	}
//
// # Processing Existing Logs
//
// A [Processor] dispatches events from any [LineSource] without starting a
// process, for example to replay logs/latest.log:
//
//	reg := mcvisor.NewRegistry()
//	reg.OnDeath(func(ev mcvisor.Event) error {
//	    fmt.Printf("%s died (killer %q)\n", ev.Player, ev.Killer)
//	    return nil
//	})
//	p, _ := mcvisor.NewProcessor(reg)
//	err := p.Pump(mcvisor.NewLineReader(f))
//
// # Custom Templates
//
// Servers with plugins or localized messages can extend the built-in
// templates with [NewTemplateParser], or load them from YAML with the
// [pattern] subpackage:
//
//	p, err := pattern.NewParserFromFile("templates.yaml")
//	srv, err := mcvisor.NewServer(jar, mcvisor.WithParser(p))
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with Mojang Studios.
package mcvisor
