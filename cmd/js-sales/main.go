// js-sales — CLI утилита для запроса оценки продаж ASIN через Jungle Scout API.
//
// Использование:
//
//	./js-sales -asin B0CXYZ1234 -from 2026-09-01 -to 2026-09-30 [-marketplace us] [-keywords]
//
// config.yaml ищется: флаг -config → текущая директория → директория бинарника.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ilkoid/junglescout-go/pkg/config"
	"github.com/ilkoid/junglescout-go/pkg/junglescout"
	"github.com/ilkoid/junglescout-go/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

// --- Стили ---
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	var (
		configFlag  = flag.String("config", "", "path to config.yaml")
		asin        = flag.String("asin", "", "ASIN to query (required)")
		from        = flag.String("from", "", "start date YYYY-MM-DD (required)")
		to          = flag.String("to", "", "end date YYYY-MM-DD (required)")
		marketplace = flag.String("marketplace", "", "marketplace override (us, uk, de, ...)")
		keywords    = flag.Bool("keywords", false, "also list keywords the ASIN ranks for")
	)
	flag.Parse()

	if err := run(*configFlag, *asin, *from, *to, *marketplace, *keywords); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(configFlag, asin, from, to, marketplaceFlag string, withKeywords bool) (err error) {
	// 1. Конфиг
	finder := &config.DefaultPathFinder{ConfigFlag: configFlag}
	configPath := finder.FindConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config from %s: %w", configPath, err)
	}

	// 2. Логгер
	if err := utils.InitLogger(cfg.App.LogPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	utils.SetDebug(cfg.App.Debug)
	utils.Info("Starting js-sales", "version", Version, "config", configPath)

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()
	defer func() {
		if err != nil {
			utils.Error("js-sales failed", "error", err)
		}
	}()

	// 3. Аргументы
	startDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return fmt.Errorf("invalid -from: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return fmt.Errorf("invalid -to: %w", err)
	}
	mp, err := junglescout.ParseMarketplace(marketplaceFlag)
	if err != nil {
		return err
	}

	// 4. Клиент (логин выполняется в конструкторе)
	client, err := junglescout.New(ctx, cfg.JungleScout)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	estimates, err := client.SalesEstimates(ctx, junglescout.SalesEstimatesQuery{
		ASIN:        asin,
		StartDate:   startDate,
		EndDate:     endDate,
		Marketplace: mp,
	})
	if err != nil {
		return describe(err)
	}
	printEstimates(estimates)

	if !withKeywords {
		return nil
	}

	kws, err := client.KeywordsByASIN(ctx, junglescout.KeywordsByASINQuery{
		ASINs:           []string{asin},
		IncludeVariants: true,
		Sort:            "-monthly_search_volume_exact",
		Marketplace:     mp,
	})
	if err != nil {
		return describe(err)
	}
	printKeywords(kws)
	return nil
}

// describe дополняет ошибку API деталями из тела ответа.
func describe(err error) error {
	var statusErr *junglescout.HTTPStatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	for _, d := range statusErr.APIErrors() {
		utils.Warn("API error detail", "title", d.Title, "detail", d.Detail, "code", d.Code)
	}
	return err
}

func printEstimates(estimates []junglescout.SalesEstimate) {
	for _, e := range estimates {
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s — %d units", e.ASIN, e.TotalUnits())))

		t := newTable("Date", "Units", "Price")
		for _, p := range e.Data {
			t.Row(p.Date, strconv.Itoa(p.EstimatedUnitsSold), formatPrice(p.LastKnownPrice))
		}
		fmt.Println(t.Render())
	}
	if len(estimates) == 0 {
		fmt.Println("No sales estimates returned")
	}
}

func printKeywords(kws []junglescout.KeywordByASIN) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Keywords (%d)", len(kws))))

	t := newTable("Keyword", "Exact volume", "Organic rank")
	for _, k := range kws {
		t.Row(k.Name, formatInt(k.MonthlySearchVolumeExact), formatInt(k.OrganicRank))
	}
	fmt.Println(t.Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
