package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mamadbah2/onionprice/internal/domain/models"
	"github.com/mamadbah2/onionprice/internal/service/calculator"
	"github.com/mamadbah2/onionprice/pkg/clients/onionprice"
)

const usage = `usage: onionctl [-config FILE] [-server URL] [-yes] <command> [args]

commands:
  calc   -name N -swat-length L -ceblok C -swat-width W -total-swat T -market-price P
  save   same flags as calc; computes and stores the result
  list   show saved results, newest first
  delete <no>  delete the result numbered <no> in list
  clear  delete every saved result
`

type options struct {
	configPath string
	server     string
	yes        bool
}

func (o *options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a TOML config file (default: user config dir)")
	fs.StringVar(&o.server, "server", "", "onionprice server base URL (default "+defaultServer+")")
	fs.BoolVar(&o.yes, "yes", false, "Skip confirmation prompts")
}

type calcOptions struct {
	req models.CalculationRequest
}

func (o *calcOptions) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.req.Name, "name", "", "Name of the field or farmer")
	fs.Func("swat-length", "Swat length in meters", numberFlag(&o.req.SwatLength))
	fs.Func("ceblok", "Ceblok per meter", numberFlag(&o.req.CeblokPerMeter))
	fs.Func("swat-width", "Swat width", numberFlag(&o.req.SwatWidth))
	fs.Func("total-swat", "Total swat count", numberFlag(&o.req.TotalSwat))
	fs.Func("market-price", "Current market price per kilo", numberFlag(&o.req.MarketPrice))
}

func numberFlag(dst *json.Number) func(string) error {
	return func(value string) error {
		*dst = json.Number(strings.TrimSpace(value))
		return nil
	}
}

type app struct {
	client onionprice.Client
	in     *bufio.Reader
	out    io.Writer
	yes    bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, newClient func(string) onionprice.Client) error {
	var opts options
	fs := flag.NewFlagSet("onionctl", flag.ContinueOnError)
	fs.SetOutput(stdout)
	opts.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadCLIConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.server != "" {
		cfg.Server = opts.server
	}

	a := &app{
		client: newClient(cfg.Server),
		in:     bufio.NewReader(stdin),
		out:    stdout,
		yes:    opts.yes || cfg.AssumeYes,
	}

	cmd := models.ParseCommand(fs.Args())
	switch cmd.Type {
	case models.CommandCalc:
		_, err := a.calculate(ctx, cmd.Args)
		return err
	case models.CommandSave:
		return a.save(ctx, cmd.Args)
	case models.CommandList:
		return a.list(ctx)
	case models.CommandDelete:
		return a.delete(ctx, cmd.Args)
	case models.CommandClear:
		return a.clear(ctx)
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd.Raw)
	}
}

func (a *app) calculate(ctx context.Context, args []string) (*models.CalculationResponse, error) {
	var opts calcOptions
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(a.out)
	opts.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Reject bad input before anything reaches the server.
	if _, err := calculator.ParseInput(opts.req); err != nil {
		return nil, calculator.ErrInvalidInput
	}

	resp, err := a.client.Calculate(ctx, opts.req)
	if err != nil {
		return nil, err
	}

	printResult(a.out, resp.View)
	return resp, nil
}

func (a *app) save(ctx context.Context, args []string) error {
	resp, err := a.calculate(ctx, args)
	if err != nil {
		return err
	}

	if err := a.client.Save(ctx, resp.Result); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Hasil berhasil disimpan")
	return nil
}

func (a *app) list(ctx context.Context) error {
	resp, err := a.client.List(ctx)
	if err != nil {
		return err
	}

	if len(resp.Items) == 0 {
		fmt.Fprintln(a.out, "Tidak ada riwayat perhitungan")
		return nil
	}

	for i, item := range resp.Items {
		fmt.Fprintf(a.out, "[%d] %s  %s  %s kuintal\n", i+1, item.View.Name, item.View.CreatedAt, item.View.Quintal)
	}
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("delete needs exactly one entry number")
	}

	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 {
		return fmt.Errorf("invalid entry number %q", args[0])
	}

	if !a.confirm("Apakah Anda yakin ingin menghapus item ini?") {
		fmt.Fprintln(a.out, "Dibatalkan")
		return nil
	}

	if err := a.client.Delete(ctx, number-1); err != nil {
		if errors.Is(err, onionprice.ErrNotFound) {
			fmt.Fprintln(a.out, "Item tidak ditemukan")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Item dihapus")
	return nil
}

func (a *app) clear(ctx context.Context) error {
	if !a.confirm("Apakah Anda yakin ingin menghapus semua riwayat?") {
		fmt.Fprintln(a.out, "Dibatalkan")
		return nil
	}

	if err := a.client.Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Riwayat dihapus")
	return nil
}

// confirm asks a yes/no question. Anything but an explicit yes declines.
func (a *app) confirm(question string) bool {
	if a.yes {
		return true
	}

	fmt.Fprintf(a.out, "%s [y/N] ", question)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "ya", "yes":
		return true
	default:
		return false
	}
}

func printResult(w io.Writer, view models.CalculationView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Nama", view.Name},
		{"Harga Pasar Saat Ini", view.MarketPrice},
		{"Total Kilogram", view.Kilo + " kg"},
		{"Total Kuintal", view.Quintal + " kuintal"},
		{"Tindak", view.Tindak},
		{"Nilai Berdasarkan Harga Pasar", view.MarketValue},
		{"Harga Beli Kategori A", view.BuyA},
		{"Harga Beli Kategori B", view.BuyB},
		{"Selisih Harga Kategori A", view.DifferenceA},
		{"Selisih Harga Kategori B", view.DifferenceB},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()
}
