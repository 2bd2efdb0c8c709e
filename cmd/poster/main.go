package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"

	"github.com/gptpoet/qasida/internal/config"
	"github.com/gptpoet/qasida/internal/model"
	"github.com/gptpoet/qasida/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	// Allow running without creds if DRY_RUN=1
	var client *twitter.Client
	if !cfg.DryRun {
		if missing := cfg.X.Missing(); len(missing) > 0 {
			slog.Error("missing required env vars", "vars", strings.Join(missing, ","))
			os.Exit(1)
		}
		client = newTwitterClient(cfg.X)
	}

	if err := run(context.Background(), cfg, client, os.Stdout); err != nil {
		if errors.Is(err, store.ErrNoUnposted) {
			slog.Info("nothing to post", "db", cfg.DBPath)
			return
		}
		slog.Error("post failed", "err", err)
		os.Exit(1)
	}
}

// run posts one random unposted verse, or previews it when client is nil.
func run(ctx context.Context, cfg *config.Cfg, client *twitter.Client, stdout io.Writer) error {
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	v, err := st.RandomUnposted(ctx)
	if err != nil {
		return err
	}
	status := formatStatus(verseLabel(v), v.Body)

	if client == nil {
		fmt.Fprintln(stdout, "DRY RUN ✅ (no network calls)")
		fmt.Fprintf(stdout, "Will post:\n---\n%s\n---\n", status)
		return nil
	}

	postID, err := postStatus(client, status)
	if err != nil {
		return err
	}
	slog.Info("posted", "id", postID, "verse", v.Label)

	if err := st.MarkPosted(ctx, v.ID, postID); err != nil {
		return err
	}
	slog.Info("marked posted", "verse", v.Label, "row", v.ID, "at", time.Now().Format(time.RFC3339))
	return nil
}

func newTwitterClient(x config.XCfg) *twitter.Client {
	oc := oauth1.NewConfig(x.ConsumerKey, x.ConsumerSecret)
	token := oauth1.NewToken(x.AccessToken, x.AccessSecret)
	return newClient(oc.Client(context.Background(), token))
}

func newClient(httpClient *http.Client) *twitter.Client {
	return twitter.NewClient(httpClient)
}

func postStatus(client *twitter.Client, status string) (string, error) {
	tweet, resp, err := client.Statuses.Update(status, nil)
	if err != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		return "", fmt.Errorf("post status (http %d): %w", code, err)
	}
	if tweet.IDStr != "" {
		return tweet.IDStr, nil
	}
	return fmt.Sprintf("%d", tweet.ID), nil
}

const (
	hashtags = "#شعر #الشعر_العربي"
	maxLen   = 280
)

// formatStatus renders "label: body hashtags", truncating the body by runes
// so the whole status fits in maxLen.
func formatStatus(label, body string) string {
	body = strings.TrimSpace(body)
	header := label + ": "
	tail := " " + hashtags

	text := header + body + tail
	if runeLen(text) <= maxLen {
		return text
	}

	// Leave room for ellipsis + tail
	ellipsis := "…"
	avail := maxLen - runeLen(header) - runeLen(tail) - runeLen(ellipsis)
	if avail < 20 { // fallback safeguard
		avail = 20
	}
	return header + truncateRunes(body, avail) + ellipsis + tail
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	if n < 0 {
		n = 0
	}
	return string(r[:n])
}

// verseLabel is used when a verse has no stored label.
func verseLabel(v *model.Verse) string {
	if v.Label != "" {
		return v.Label
	}
	return fmt.Sprintf("%d", v.Position+1)
}
