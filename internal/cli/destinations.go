package cli

import (
	"context"
	"fmt"

	"trotamundos/internal/models"
)

func (a *App) listDestinations(ctx context.Context) {
	dests, err := a.client.Destinations(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if len(dests) == 0 {
		fmt.Fprintln(a.out, "No destinations yet.")
		return
	}
	for _, d := range dests {
		fmt.Fprintf(a.out, "%-40s %s\n", d.Slug, destinationSummary(&d))
	}
}

func destinationSummary(d *models.Destination) string {
	place := d.Country
	if d.City != "" {
		place = d.City + ", " + d.Country
	}
	s := fmt.Sprintf("%s (%s)", d.Name, place)
	if d.Continent != nil {
		s += " - " + d.Continent.Name
	}
	return s
}

func (a *App) showDestination(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: destination <slug>")
		return
	}

	d, err := a.client.Destination(ctx, args[0])
	if err != nil {
		a.reportError(ctx, err)
		return
	}

	fmt.Fprintln(a.out, d.Name)
	fmt.Fprintf(a.out, "%s, %s", d.City, d.Country)
	if d.Continent != nil {
		fmt.Fprintf(a.out, " (%s)", d.Continent.Name)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, d.Description)
}

func (a *App) listContinents(ctx context.Context) {
	continents, err := a.client.Continents(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	for _, c := range continents {
		fmt.Fprintf(a.out, "%-20s %s\n", c.Slug, c.Name)
	}
}

func (a *App) destinationsByContinent(ctx context.Context) {
	groups, err := a.client.DestinationsByContinent(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s (%d)\n", g.Name, len(g.Destinations))
		for _, d := range g.Destinations {
			fmt.Fprintf(a.out, "  %-38s %s\n", d.Slug, destinationSummary(&d))
		}
	}
}
