// feedcli is a terminal client used to exercise the app end to end: log in,
// load the feed into the local store, and run optimistic likes/comments
// against a live backend.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/api"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/appstate"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/credentials"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/logger"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/optimistic"
)

func main() {
	var baseURL, email, password, stateDir string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "backend base URL")
	flag.StringVar(&email, "email", "", "login email (skip to reuse stored token)")
	flag.StringVar(&password, "password", "", "login password")
	flag.StringVar(&stateDir, "state-dir", defaultStateDir(), "directory for the stored token")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	tokens := credentials.NewFileStore(stateDir)
	client := api.NewClient(baseURL, tokens, log)

	if email != "" {
		res, err := client.Login(ctx, email, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
		if err := tokens.Save(ctx, res.Token); err != nil {
			fmt.Fprintf(os.Stderr, "could not store token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("logged in as %s\n", res.DisplayName)
	}

	store := appstate.NewStore()
	notifier := optimistic.NotifierFunc(func(message string) {
		fmt.Printf("! %s\n", message)
	})
	coord := optimistic.NewCoordinator(store, client, tokens, notifier, log)

	posts, err := client.Feed(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "feed failed: %v\n", err)
		os.Exit(1)
	}
	store.PutAll(posts)
	printFeed(store)

	fmt.Println(`commands: like <postId> | comment <postId> <text> | feed | quit`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "like":
			if len(fields) != 2 {
				fmt.Println("usage: like <postId>")
				continue
			}
			if err := coord.ToggleLike(ctx, fields[1]); err != nil {
				fmt.Printf("toggle failed: %v\n", err)
			}
			printPost(store, fields[1])
		case "comment":
			if len(fields) < 3 {
				fmt.Println("usage: comment <postId> <text>")
				continue
			}
			if err := coord.AddComment(ctx, fields[1], strings.Join(fields[2:], " ")); err != nil {
				fmt.Printf("comment failed: %v\n", err)
			}
			printPost(store, fields[1])
		case "feed":
			printFeed(store)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command")
		}
	}
}

func printFeed(store *appstate.Store) {
	for _, p := range store.List() {
		printLine(p)
	}
}

func printPost(store *appstate.Store, postID string) {
	p, err := store.Get(postID)
	if err != nil {
		fmt.Printf("unknown post %s\n", postID)
		return
	}
	printLine(p)
	for _, c := range p.Comments {
		marker := ""
		if c.Pending {
			marker = " (sending...)"
		}
		fmt.Printf("    %s: %s%s\n", c.AuthorName, c.Text, marker)
	}
}

func printLine(p appstate.Post) {
	heart := " "
	if p.LikedByMe {
		heart = "*"
	}
	fmt.Printf("  [%s] %s by %s  %s%d likes, %d comments\n",
		p.ID, p.Caption, p.Author.Name, heart, p.LikeCount, len(p.Comments))
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".designerlock"
	}
	return home + "/.designerlock"
}
