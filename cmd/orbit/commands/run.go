package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/cli"
	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/live"
	"github.com/eburon/orbit/pkg/session"
)

var (
	runLang1  string
	runLang2  string
	runTopic  string
	runVoice1 string
	runVoice2 string
	runModel  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive translation session",
	Long: `Start a live translation session on the terminal.

Typed lines are sent to the engine as Staff turns; the translated
response streams back and both sides are archived under the staff ID.

In-session commands:
  /lang1 <language>   set the Staff language (or "auto")
  /lang2 <language>   set the Guest language
  /topic <text>       set the conversation topic
  /config             show the current session configuration
  /clear              clear the on-screen turn log
  /quit               end the session

Examples:
  orbit run --id SI1234
  orbit run --id SI1234 --lang1 auto --lang2 "Spanish" --topic "hotel check-in"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := signIn()
		if err != nil {
			return err
		}
		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		settings, err := newSettings()
		if err != nil {
			return err
		}
		if err := applyRunFlags(settings); err != nil {
			return err
		}

		store, backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := restoreUserSettings(cmd, store, user.ID, settings, user.SuperAdmin); err != nil {
			return err
		}

		log := session.NewLog()
		archiver := history.NewArchiver(store, user.ID)
		wireSession(cmd.Context(), archiver, log, os.Stdout)
		defer archiver.Wait()

		apiKey, err := cfg.ResolveAPIKey()
		if err != nil {
			return err
		}
		client, err := live.NewClient(cmd.Context(), apiKey)
		if err != nil {
			return err
		}

		sess, err := client.Connect(cmd.Context(), settings.Config(), log, live.NewRegistry())
		if err != nil {
			return err
		}
		defer sess.Close()

		fmt.Printf("signed in as %s (%s)\n", user.ID, user.Email)
		fmt.Println("type to talk, /quit to end")
		return readLoop(cmd, sess, settings, log)
	},
}

// wireSession attaches the archive append-through first and the terminal
// renderer second, so every finalized turn is archived and then printed.
func wireSession(ctx context.Context, archiver *history.Archiver, log *session.Log, w io.Writer) {
	archiver.Attach(ctx, log)
	transcript := cli.NewTranscript(cli.DefaultTheme)
	log.OnFinalize(func(turn session.Turn) {
		fmt.Fprintln(w, transcript.RenderTurn(turn, false))
	})
}

func applyRunFlags(settings *session.Settings) error {
	if runLang1 != "" {
		settings.SetLanguage1(runLang1)
	}
	if runLang2 != "" {
		if err := settings.SetLanguage2(runLang2); err != nil {
			return err
		}
	}
	if runTopic != "" {
		settings.SetTopic(runTopic)
	}
	if runVoice1 != "" {
		settings.SetVoice1(runVoice1)
	}
	if runVoice2 != "" {
		settings.SetVoice2(runVoice2)
	}
	if runModel != "" {
		settings.SetModel(runModel)
	}
	return nil
}

func readLoop(cmd *cobra.Command, sess *live.Session, settings *session.Settings, log *session.Log) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-sess.Done():
			return sess.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "/") {
				quit, err := sessionCommand(line, settings, log)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				if quit {
					return nil
				}
				continue
			}
			if err := sess.SendText(line); err != nil {
				return err
			}
		}
	}
}

func sessionCommand(line string, settings *session.Settings, log *session.Log) (quit bool, err error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/lang1":
		settings.SetLanguage1(arg)
		fmt.Println("updated; applies when the next session starts")
	case "/lang2":
		if err := settings.SetLanguage2(arg); err != nil {
			return false, err
		}
		fmt.Println("updated; applies when the next session starts")
	case "/topic":
		settings.SetTopic(arg)
		fmt.Println("updated; applies when the next session starts")
	case "/config":
		return false, cli.Output(settings.Config(), cli.OutputOptions{Format: cli.OutputFormat(formatFlag)})
	case "/clear":
		log.Clear()
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
	return false, nil
}

func init() {
	runCmd.Flags().StringVar(&runLang1, "lang1", "", `Staff language (or "auto")`)
	runCmd.Flags().StringVar(&runLang2, "lang2", "", "Guest language")
	runCmd.Flags().StringVar(&runTopic, "topic", "", "conversation topic")
	runCmd.Flags().StringVar(&runVoice1, "voice1", "", "Staff voice")
	runCmd.Flags().StringVar(&runVoice2, "voice2", "", "Guest voice")
	runCmd.Flags().StringVar(&runModel, "model", "", "live model identifier")
	rootCmd.AddCommand(runCmd)
}
