package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BearBump/LlantaBox/internal/integrations/shopclient"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/pkg/errors"
)

type check struct {
	name string
	run  func(ctx context.Context, c *shopclient.Client) (string, error)
}

var checks = []check{
	{"health", func(ctx context.Context, c *shopclient.Client) (string, error) {
		h, err := c.Health(ctx)
		if err != nil {
			return "", err
		}
		if h.Status != "ok" {
			return "", errors.Errorf("status %q", h.Status)
		}
		return fmt.Sprintf("status=%s environment=%s uptime=%.0fs", h.Status, h.Environment, h.Uptime), nil
	}},
	{"tires", func(ctx context.Context, c *shopclient.Client) (string, error) {
		tires, err := c.ListTires(ctx, models.TireFilter{})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d tires", len(tires)), nil
	}},
	{"tire", func(ctx context.Context, c *shopclient.Client) (string, error) {
		tires, err := c.ListTires(ctx, models.TireFilter{Category: models.CategoryLawn})
		if err != nil {
			return "", err
		}
		if len(tires) == 0 {
			return "", errors.New("catalog is empty")
		}
		t, err := c.GetTire(ctx, tires[0].ID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s $%.2f", t.ID, t.Brand, t.Size, t.Price), nil
	}},
	{"brands", func(ctx context.Context, c *shopclient.Client) (string, error) {
		brands, err := c.Brands(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(brands, ", "), nil
	}},
	{"categories", func(ctx context.Context, c *shopclient.Client) (string, error) {
		cats, err := c.Categories(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(cats, ", "), nil
	}},
}

// runProbe прогоняет все проверки и возвращает число упавших.
func runProbe(ctx context.Context, c *shopclient.Client, out io.Writer) int {
	failed := 0
	for _, ch := range checks {
		detail, err := ch.run(ctx, c)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %-10s %v\n", ch.name, err)
			continue
		}
		fmt.Fprintf(out, "OK   %-10s %s\n", ch.name, detail)
	}
	return failed
}
