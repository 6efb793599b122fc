package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/bloglist/api"
	"github.com/deemkeen/bloglist/app"
	"github.com/deemkeen/bloglist/cli"
	"github.com/deemkeen/bloglist/middleware"
	"github.com/deemkeen/bloglist/notify"
	"github.com/deemkeen/bloglist/posts"
	"github.com/deemkeen/bloglist/session"
	"github.com/deemkeen/bloglist/storage"
	"github.com/deemkeen/bloglist/util"
	"github.com/deemkeen/bloglist/web"
)

func main() {
	versionFlag := flag.Bool("v", false, "print version and exit")
	serveFlag := flag.Bool("serve", false, "run a local development server for the blog list API")
	demoUser := flag.String("user", "demo", "username seeded into the development server")
	demoPassword := flag.String("password", "demo", "password of the seeded user")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s v%s\n", util.Name, util.GetVersion())
		return
	}

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln(err)
	}

	if *serveFlag {
		serve(conf, *demoUser, *demoPassword)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	interactive := len(args) == 0 || !cli.IsCommand(args[0])

	if interactive {
		f, err := tea.LogToFile(conf.Conf.LogFile, util.Name)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
	}
	log.Printf("Starting %s with config: %s", util.GetNameAndVersion(), util.PrettyPrint(conf.Conf))

	store, err := storage.OpenSQLite(conf.Conf.StoragePath)
	if err != nil {
		log.Fatalln(err)
	}
	defer store.Close()

	client := api.NewClient(api.ConfigFromApp(conf), nil)
	sched := notify.NewScheduler(time.Duration(conf.Conf.NotifySeconds) * time.Second)
	defer sched.Stop()
	a := app.New(session.NewManager(client, store), posts.NewManager(client), sched)

	if interactive {
		if err := middleware.MainTui(ctx, a, sched); err != nil {
			os.Exit(1)
		}
		return
	}

	a.Boot(ctx)
	if err := middleware.HandleCLI(ctx, os.Stdin, os.Stdout, args, a, sched, conf); err != nil {
		store.Close()
		os.Exit(1)
	}
}

func serve(conf *util.AppConfig, username, password string) {
	store := web.NewStore()
	if _, err := store.AddUser(username, username, password); err != nil {
		log.Fatalf("Failed to seed user %s: %v", username, err)
	}
	log.Printf("Seeded user %s", username)

	if err := web.Serve(conf, store); err != nil {
		log.Fatalln(err)
	}
}
