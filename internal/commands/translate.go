// Package commands implements the CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"opus-gate/internal/backend"
	"opus-gate/internal/config"
	"opus-gate/internal/httpclient"
	"opus-gate/internal/routing"
	"opus-gate/internal/store"
	"opus-gate/internal/translator"

	"github.com/sirupsen/logrus"
)

// RunTranslate translates a single text from the command line without
// starting the HTTP server. Usage: opus-gate translate <from> <to> <text>
func RunTranslate(args []string) {
	if len(args) < 3 {
		printTranslateUsage()
		os.Exit(1)
	}

	from := strings.ToLower(args[0])
	to := strings.ToLower(args[1])
	text := strings.Join(args[2:], " ")

	// Keep CLI output clean, only warnings and above.
	logrus.SetLevel(logrus.WarnLevel)

	configManager, err := config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	routesConfig, err := config.LoadRoutesConfig(configManager.GetRoutesConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load routes configuration: %v\n", err)
		os.Exit(1)
	}

	table, err := routing.NewTable(routesConfig.LanguageNames, routesConfig.TranslationRoutes, routesConfig.DefaultIntermediate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid routes configuration: %v\n", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(routesConfig, httpclient.NewManager())
	manager := translator.NewManager(table, factory, routesConfig, store.NewMemoryStore())

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(routesConfig.Inference.TimeoutSeconds)*time.Second*3)
	defer cancel()

	result, err := manager.Translate(ctx, from, to, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.TranslatedText)
}

func printTranslateUsage() {
	fmt.Println(`Usage: opus-gate translate <from> <to> "text to translate"`)
	fmt.Println()
	fmt.Println("Available languages:")
	fmt.Println("  zh - Chinese")
	fmt.Println("  en - English")
	fmt.Println("  el - Greek")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println(`  opus-gate translate zh en "你好世界"`)
	fmt.Println(`  opus-gate translate en el "Hello world"`)
	fmt.Println(`  opus-gate translate zh el "你好世界"`)
}
