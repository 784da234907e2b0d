package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

// render writes one view of ds to w.
func render(w io.Writer, view, format string, ds models.Dataset) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown format %q", format)
	}

	var value any
	switch view {
	case "all":
		value = ds
	case "attacks":
		if format == "text" {
			return renderAttacks(w, format, ds.Attacks)
		}
		value = ds.Attacks
	case "threat":
		value = ds.ThreatStatus
	case "countries":
		value = ds.TopCountries
	case "types":
		value = ds.AttackTypes
	case "timeline":
		value = ds.Timeline
	case "summary":
		value = ds.Summary
	default:
		return fmt.Errorf("unknown view %q", view)
	}

	if format == "json" {
		return writeJSON(w, value)
	}
	return renderText(w, value)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// renderAttacks prints attacks the way the feed list shows them.
func renderAttacks(w io.Writer, format string, attacks []models.Attack) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		for _, a := range attacks {
			if err := enc.Encode(a); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, a := range attacks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s (%s) -> %s (%s)\t%s/%d\n",
			a.Timestamp.Format("15:04:05"),
			strings.ToUpper(string(a.Severity)),
			a.Type.Label(),
			a.Source.DisplayName(), a.Source.CountryCode,
			a.Target.DisplayName(), a.Target.CountryCode,
			a.Protocol, a.Port,
		)
	}
	return tw.Flush()
}

func renderText(w io.Writer, value any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch v := value.(type) {
	case models.Dataset:
		fmt.Fprintf(tw, "seed\t%d\n", v.Seed)
		fmt.Fprintf(tw, "attacks\t%d\n", len(v.Attacks))
		fmt.Fprintf(tw, "threat level\t%s\n", strings.ToUpper(string(v.ThreatStatus.Level)))
		fmt.Fprintf(tw, "attacks/min\t%d\n", v.ThreatStatus.AttacksPerMinute)
		fmt.Fprintf(tw, "total (24h)\t%d\n", v.Summary.TotalAttacks)
		fmt.Fprintf(tw, "blocked\t%d (%.1f%%)\n", v.Summary.Blocked, v.Summary.BlockRate*100)
	case models.ThreatStatus:
		fmt.Fprintf(tw, "level\t%s\n", strings.ToUpper(string(v.Level)))
		fmt.Fprintf(tw, "attacks/min\t%d\n", v.AttacksPerMinute)
		fmt.Fprintf(tw, "active incidents\t%d\n", v.ActiveIncidents)
		fmt.Fprintf(tw, "top attack type\t%s\n", v.TopAttackType.Label())
	case []models.CountryAttackStat:
		for _, c := range v {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.CountryCode, c.Country, c.Attacks)
		}
	case []models.AttackTypeStat:
		for _, s := range v {
			fmt.Fprintf(tw, "%s\t%d\n", s.Type.Label(), s.Count)
		}
	case []models.TimelinePoint:
		for _, p := range v {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Time, p.Attacks, p.Blocked)
		}
	case models.Summary:
		fmt.Fprintf(tw, "total attacks\t%d\n", v.TotalAttacks)
		fmt.Fprintf(tw, "blocked\t%d\n", v.Blocked)
		fmt.Fprintf(tw, "block rate\t%.1f%%\n", v.BlockRate*100)
		fmt.Fprintf(tw, "active threats\t%d\n", v.ActiveThreats)
		fmt.Fprintf(tw, "threat level\t%s\n", strings.ToUpper(string(v.ThreatLevel)))
	default:
		return fmt.Errorf("no text rendering for %T", value)
	}
	return tw.Flush()
}
