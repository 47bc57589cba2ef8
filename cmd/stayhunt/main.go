package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"stayhunt/internal/adapters/observability"
	"stayhunt/internal/adapters/stayhunt"
	"stayhunt/internal/browse"
	"stayhunt/internal/domain"
	"stayhunt/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	apiFlag := &cli.StringFlag{
		Name:  "api",
		Value: cfg.APIBaseURL,
		Usage: "StayHunt API base URL.",
	}

	app := &cli.App{
		Name:  "stayhunt",
		Usage: "Browse homestay and resort listings from the terminal.",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List properties with filters, search and incremental paging.",
				Flags: []cli.Flag{
					apiFlag,
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Free-text search."},
					&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Filter by location."},
					&cli.StringFlag{Name: "sub-location", Aliases: []string{"s"}, Usage: "Filter by sub-location."},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category (Resort/Homestay)."},
					&cli.Float64Flag{Name: "min-rating", Aliases: []string{"r"}, Usage: "Minimum rating filter (0-5)."},
					&cli.StringFlag{Name: "sort", Value: string(domain.SortRatingDesc), Usage: "Sort order: rating_desc, rating_asc, reviews_desc, reviews_asc, name_asc."},
					&cli.IntFlag{Name: "per-page", Value: domain.DefaultPerPage, Usage: "Page size (1-50)."},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Keep the session open for paging and filter commands."},
				},
				Action: runList,
			},
			{
				Name:  "locations",
				Usage: "Show the location / sub-location tree with property counts.",
				Flags: []cli.Flag{
					apiFlag,
					&cli.BoolFlag{Name: "expand", Aliases: []string{"e"}, Usage: "Expand every location."},
				},
				Action: runLocations,
			},
			{
				Name:      "show",
				Usage:     "Show one property by id.",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{apiFlag},
				Action:    runShow,
			},
			{
				Name:      "call",
				Usage:     "Print the dialer link for a property.",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{apiFlag},
				Action:    contactAction(func(p domain.Property) (string, error) { return browse.DialURL(p.GooglePhone) }),
			},
			{
				Name:      "chat",
				Usage:     "Print the WhatsApp link for a property.",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{apiFlag},
				Action:    contactAction(func(p domain.Property) (string, error) { return browse.WhatsAppURL(p.GooglePhone) }),
			},
			{
				Name:      "map",
				Usage:     "Print the maps link for a property.",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{apiFlag},
				Action:    contactAction(func(p domain.Property) (string, error) { return browse.MapURL(p.GoogleMapsLink) }),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func clientFromFlags(c *cli.Context) (*stayhunt.Client, error) {
	cfg := shared.Load()
	return stayhunt.New(c.String("api"), cfg.ClientRPS)
}

func filtersFromFlags(c *cli.Context) browse.Filters {
	f := browse.Filters{
		Search:      c.String("search"),
		Location:    c.String("location"),
		SubLocation: c.String("sub-location"),
		Category:    c.String("category"),
		Sort:        domain.ParseSortKey(c.String("sort")),
	}
	if c.IsSet("min-rating") {
		r := c.Float64("min-rating")
		f.MinRating = &r
	}
	return f
}

func runList(c *cli.Context) error {
	cl, err := clientFromFlags(c)
	if err != nil {
		return err
	}
	pager := browse.NewPager(cl, filtersFromFlags(c), c.Int("per-page"))

	pager.SetFilter(c.Context, func(*browse.Filters) {})
	browse.RenderList(os.Stdout, pager.Snapshot())

	if !c.Bool("interactive") {
		return nil
	}

	fmt.Println("commands: n=next page  r=refresh  t=retry  f <text>=search  x=clear filters  q=quit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "q":
			return nil
		case line == "n":
			pager.LoadMore(c.Context)
		case line == "r":
			pager.Refresh(c.Context)
		case line == "t":
			pager.Retry(c.Context)
		case line == "x":
			pager.ClearFilters(c.Context)
		case strings.HasPrefix(line, "f "):
			pager.Search(c.Context, strings.TrimSpace(strings.TrimPrefix(line, "f ")))
		case line == "":
			continue
		default:
			fmt.Println("unknown command")
			continue
		}
		browse.RenderList(os.Stdout, pager.Snapshot())
	}
}

func runLocations(c *cli.Context) error {
	cl, err := clientFromFlags(c)
	if err != nil {
		return err
	}
	stats, err := cl.Locations(c.Context)
	if err != nil {
		return fmt.Errorf("could not load locations: %w", err)
	}
	tree := browse.NewTree(stats)
	if c.Bool("expand") {
		for _, n := range tree.Locations {
			n.Expanded = true
		}
	} else {
		tree.ExpandFirst()
	}
	browse.RenderTree(os.Stdout, tree)
	return nil
}

func propertyArg(c *cli.Context) (domain.Property, error) {
	if c.Args().Len() != 1 {
		return domain.Property{}, fmt.Errorf("expected exactly one property id")
	}
	var id int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &id); err != nil {
		return domain.Property{}, fmt.Errorf("property id must be a number")
	}
	cl, err := clientFromFlags(c)
	if err != nil {
		return domain.Property{}, err
	}
	return cl.Property(c.Context, id)
}

func runShow(c *cli.Context) error {
	p, err := propertyArg(c)
	if err != nil {
		return err
	}
	browse.RenderProperty(os.Stdout, p)
	return nil
}

func contactAction(link func(domain.Property) (string, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		p, err := propertyArg(c)
		if err != nil {
			return err
		}
		u, err := link(p)
		if err != nil {
			// Missing contact data is a listing problem, not a network one.
			return fmt.Errorf("%s: %w", p.HomestayName, err)
		}
		fmt.Println(u)
		return nil
	}
}
