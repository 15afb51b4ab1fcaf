package maccms

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/fatih/color"

	"neovideo/internal/domain/maccms"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
)

func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSourcesTable(out io.Writer, sources []maccms.Source) error {
	if len(sources) == 0 {
		_, err := fmt.Fprintln(out, "Источники не найдены")
		return err
	}

	headerColor.Fprintln(out, "MacCMS sources")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tType\tAPI\tUpdated\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	for _, s := range sources {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			s.ID,
			truncate(s.Name, 30),
			s.RespType,
			s.Api,
			s.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nВсего источников: %d\n", len(sources))
	return err
}

func printSource(out io.Writer, s maccms.Source) error {
	_, err := fmt.Fprintf(out, "%s %d %s %s (%s)\n", okColor.Sprint("✓"), s.ID, s.Name, s.Api, s.RespType)
	return err
}

// truncate обрезает s до length рун; многоточие только при length > 3
func truncate(s string, length int) string {
	if length <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	r := []rune(s)
	if length <= 3 {
		return string(r[:length])
	}
	return string(r[:length-3]) + "..."
}

func printHome(out io.Writer, src string, h maccms.Home) error {
	headerColor.Fprintln(out, src)
	fmt.Fprintf(out, "Страница %d из %d, всего видео: %d\n", h.Page, h.PageCount, h.Total)

	if len(h.Categories) > 0 {
		names := make([]string, 0, len(h.Categories))
		for _, c := range h.Categories {
			names = append(names, fmt.Sprintf("%d:%s", c.ID, c.Name))
		}
		fmt.Fprintf(out, "Категории: %s\n", strings.Join(names, ", "))
	}

	if len(h.Videos) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tType\tName\tUpdated\t\n")
	for _, v := range h.Videos {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t\n", v.ID, v.CategoryID, truncate(v.Name, 40), v.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printHomeItems(out io.Writer, items []maccms.HomeItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "Источники не найдены")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tStatus\tTotal\tCategories\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	failed := 0
	for _, it := range items {
		if it.Data == nil {
			failed++
			fmt.Fprintf(w, "%d\t%s\t%s\t-\t-\t\n", it.ID, truncate(it.Name, 30), errColor.Sprint(truncate(it.Error, 40)))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t\n", it.ID, truncate(it.Name, 30), okColor.Sprint("ok"), it.Data.Total, len(it.Data.Categories))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nДоступно: %d из %d\n", len(items)-failed, len(items))
	return err
}
