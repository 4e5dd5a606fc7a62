package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"topicbot/config"
	"topicbot/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

type demoOptions struct {
	URL   string `long:"url" env:"TOPICBOT_URL" default:"http://localhost:8080" description:"Topicbot API URL"`
	Count int    `short:"n" long:"count" default:"3" description:"Topics to select per run"`
}

func main() {
	_ = godotenv.Load()

	var opts demoOptions
	ok, err := config.Parse(&opts, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if !ok {
		return
	}

	program := tea.NewProgram(tui.NewModel(opts.URL, opts.Count))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
