package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/catalog"
)

func makeCatalogCMD() cli.Command {
	catalogCMD := cli.Command{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "Lists the seed catalog",
		Action:  listCatalog,
	}
	configureCatalog(&catalogCMD)
	return catalogCMD
}

func configureCatalog(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.StringFlag{
			Name:  "category",
			Usage: "only list this category",
			Value: string(models.CategoryAll),
		},
		cli.StringFlag{
			Name:  "query",
			Usage: "title or creator substring",
		},
		cli.StringFlag{
			Name:  "related",
			Usage: "list videos related to this id instead",
		},
	)
}

func listCatalog(c *cli.Context) error {
	cat := catalog.NewSeeded()
	var vs []models.Video
	if id := c.String("related"); id != "" {
		v, ok := cat.Get(id)
		if !ok {
			return errors.Errorf("no video with id %v", id)
		}
		vs = cat.Related(&v)
	} else {
		vs = catalog.NewFeed(cat).Filter(models.ParseCategory(c.String("category")), c.String("query"))
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDURATION\tCREATOR\tVIEWS")
	var total int
	for _, v := range vs {
		total += v.Duration
		_, _ = fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\n", v.ID, v.Title, v.Category, v.FormattedDuration(), v.Creator, v.Views)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Printf("%v videos, %v total\n", humanize.Comma(int64(len(vs))), models.FormatDuration(total))
	return err
}
