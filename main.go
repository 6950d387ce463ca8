package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/config"
	"github.com/cantara/locations/location"
	"github.com/cantara/locations/watch"
	"github.com/cantara/locations/zip"
	"github.com/urfave/cli/v2"
)

var closeLog func()

func initLog() error {
	logDir := config.LogDir()
	if logDir == "" {
		return nil
	}
	log.SetPrefix(config.LogPrefix())
	cloaser := log.SetOutputFolder(logDir)
	if cloaser == nil {
		return fmt.Errorf("unable to set log dir %s", logDir)
	}
	done := make(chan func())
	log.StartRotate(done)
	closeLog = func() {
		close(done)
		cloaser()
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "locations",
		Usage: "inspect and manage file locations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Value: ".env",
				Usage: "dotenv `FILE` to load settings from",
			},
		},
		Before: func(c *cli.Context) error {
			err := config.Load(c.String("env"))
			if err != nil {
				return err
			}
			err = initLog()
			if err != nil {
				return err
			}
			log.Debug("Log initialized")
			return nil
		},
		After: func(c *cli.Context) error {
			if closeLog != nil {
				closeLog()
				closeLog = nil
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "show what is known about a location",
				ArgsUsage: "PATH",
				Action:    info,
			},
			{
				Name:      "children",
				Usage:     "list the entries directly below a directory",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					loc, err := pathArg(c, 0)
					if err != nil {
						return err
					}
					printAll(c.App.Writer, loc.Children())
					return nil
				},
			},
			{
				Name:      "descendants",
				Usage:     "list every entry below a directory",
				ArgsUsage: "PATH",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "files", Usage: "only regular files"},
					&cli.BoolFlag{Name: "dirs", Usage: "only directories"},
				},
				Action: func(c *cli.Context) error {
					loc, err := pathArg(c, 0)
					if err != nil {
						return err
					}
					switch {
					case c.Bool("files") && c.Bool("dirs"):
						return cli.Exit("--files and --dirs are exclusive", 2)
					case c.Bool("files"):
						printAll(c.App.Writer, loc.SubFiles(true))
					case c.Bool("dirs"):
						printAll(c.App.Writer, loc.SubDirectories(true))
					default:
						printAll(c.App.Writer, loc.Descendants())
					}
					return nil
				},
			},
			{
				Name:      "siblings",
				Usage:     "list the other entries next to a location",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					loc, err := pathArg(c, 0)
					if err != nil {
						return err
					}
					printAll(c.App.Writer, loc.Siblings())
					return nil
				},
			},
			{
				Name:      "maxvalid",
				Usage:     "print the nearest existing ancestor",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					loc, err := pathArg(c, 0)
					if err != nil {
						return err
					}
					valid, ok := loc.MaxValid()
					if !ok {
						return cli.Exit("nothing along "+loc.Path()+" exists", 1)
					}
					fmt.Fprintln(c.App.Writer, valid.Path())
					return nil
				},
			},
			{
				Name:      "zip",
				Usage:     "archive a directory into another directory",
				ArgsUsage: "SRC DIR",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "remove", Usage: "remove SRC once archived"},
					&cli.Int64Flag{Name: "max-size", Usage: "prune the oldest archives in DIR above this many `BYTES`"},
				},
				Action: zipCmd,
			},
			{
				Name:      "trash",
				Usage:     "move a location to the trash",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					loc, err := pathArg(c, 0)
					if err != nil {
						return err
					}
					trashed, err := loc.Trash()
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, trashed.Path())
					return nil
				},
			},
			{
				Name:      "watch",
				Usage:     "print changes below a directory until interrupted",
				ArgsUsage: "DIR",
				Action:    watchCmd,
			},
			{
				Name:      "dir",
				Usage:     "print a standard directory, e.g. caches or application-support",
				ArgsUsage: "KIND",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "domain", Value: "user", Usage: "user, local or system"},
				},
				Action: dirCmd,
			},
			{
				Name:      "cloud",
				Usage:     "print the local mirror of a cloud container",
				ArgsUsage: "[IDENTIFIER]",
				Action: func(c *cli.Context) error {
					loc, ok := location.FromCloudContainer(c.Args().First())
					if !ok {
						return cli.Exit("no cloud container available", 1)
					}
					fmt.Fprintln(c.App.Writer, loc.Path())
					return nil
				},
			},
		},
	}
}

func pathArg(c *cli.Context, i int) (loc location.Location, err error) {
	if c.NArg() <= i {
		err = cli.Exit(fmt.Sprintf("missing %s argument", c.Command.ArgsUsage), 2)
		return
	}
	loc = location.FromPath(c.Args().Get(i))
	return
}

func printAll(w io.Writer, locs []location.Location) {
	for _, loc := range locs {
		fmt.Fprintln(w, loc.Path())
	}
}

func info(c *cli.Context) error {
	loc, err := pathArg(c, 0)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "path:\t%s\n", loc.Path())
	fmt.Fprintf(w, "url:\t%s\n", loc)
	fmt.Fprintf(w, "exists:\t%t\n", loc.IsExist())
	if !loc.IsExist() {
		return nil
	}
	attrs := loc.Attributes()
	kind := "file"
	switch {
	case loc.IsSymbolicLink():
		kind = "symlink"
	case loc.IsDirectory():
		kind = "directory"
	}
	fmt.Fprintf(w, "type:\t%s\n", kind)
	fmt.Fprintf(w, "size:\t%d\n", attrs.Size)
	fmt.Fprintf(w, "modified:\t%s\n", attrs.ModificationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "mode:\t%s\n", attrs.Permissions)
	if attrs.OwnerName != "" {
		fmt.Fprintf(w, "owner:\t%s:%s\n", attrs.OwnerName, attrs.GroupOwnerName)
	}
	if mimeType, ok := loc.MIME(); ok {
		fmt.Fprintf(w, "mime:\t%s\n", mimeType)
	}
	if dest, ok := loc.SymbolicLinkDestination(); ok {
		fmt.Fprintf(w, "target:\t%s\n", dest.Path())
	}
	fmt.Fprintf(w, "cloud:\t%t\n", loc.IsCloudContained())
	return nil
}

func zipCmd(c *cli.Context) error {
	src, err := pathArg(c, 0)
	if err != nil {
		return err
	}
	dir, err := pathArg(c, 1)
	if err != nil {
		return err
	}
	z := zip.Zipper{
		Dir:     dir,
		MaxSize: c.Int64("max-size"),
	}
	var archive location.Location
	if c.Bool("remove") {
		archive, err = z.Archive(src)
	} else {
		archive, err = z.ZipDir(src)
		z.Prune()
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, archive.Path())
	return nil
}

func watchCmd(c *cli.Context) error {
	dir, err := pathArg(c, 0)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	events, err := watch.Directory(ctx, dir)
	if err != nil {
		return err
	}
	for e := range events {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", e.Op, e.Location.Path())
	}
	return nil
}

func dirCmd(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("missing KIND argument", 2)
	}
	kind, ok := location.ParseDirectory(c.Args().First())
	if !ok {
		return cli.Exit("unknown directory kind "+c.Args().First(), 2)
	}
	domain, ok := location.ParseDomain(c.String("domain"))
	if !ok {
		return cli.Exit("unknown domain "+c.String("domain"), 2)
	}
	loc := location.FromSystemDirectory(kind, domain)
	if loc.Path() == "" {
		return cli.Exit("no such directory in that domain", 1)
	}
	fmt.Fprintln(c.App.Writer, loc.Path())
	return nil
}

func main() {
	err := newApp().RunContext(context.Background(), os.Args)
	if err != nil {
		log.AddError(err).Fatal("While running locations")
	}
}
