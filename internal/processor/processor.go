// Package processor runs the fixed decoder sequence over one table per
// invocation. Decoders swallow their own sub-step failures; the processor
// only treats a lost table as fatal.
package processor

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Raumberg/XLmaniac/internal/config"
	"github.com/Raumberg/XLmaniac/internal/decoder"
	"github.com/Raumberg/XLmaniac/internal/table"
)

// Processor owns the table reference through the pipeline: each decoder
// receives it, rewrites it and hands it back.
type Processor struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) *Processor {
	return &Processor{cfg: cfg, log: log}
}

// Process runs the full decoder sequence for the single-sheet shape.
func (p *Processor) Process(t *table.Table) (*table.Table, error) {
	log := p.log.With("run_id", uuid.NewString())

	return run(t, log, []decoder.Decoder{
		decoder.NewPerson(p.cfg.Person.Work, log),
		decoder.NewDates(log),
		decoder.NewPhones(p.cfg.Phones.Region, log),
		decoder.NewPassport(log),
		decoder.NewDebt(log),
		p.register(log),
		decoder.NewFrame(log),
	})
}

// ProcessPost handles the multi-sheet shape: the three entity tables are
// decoded independently, joined on the shared id, then cleaned once.
func (p *Processor) ProcessPost(contracts, addresses, phones *table.Table) (*table.Table, error) {
	if contracts == nil || addresses == nil || phones == nil {
		return nil, fmt.Errorf("post shape requires contracts, addresses and phones tables")
	}

	log := p.log.With("run_id", uuid.NewString())

	contracts, err := run(contracts, log, []decoder.Decoder{
		decoder.NewPerson(p.cfg.Person.Work, log),
		decoder.NewDates(log),
		decoder.NewPassport(log),
		decoder.NewDebt(log),
		p.register(log),
	})
	if err != nil {
		return nil, fmt.Errorf("contracts: %w", err)
	}

	addresses, err = p.register(log).DecodeAddresses(addresses)
	if err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}

	phones, err = decoder.NewPhones(p.cfg.Phones.Region, log).DecodePost(phones)
	if err != nil {
		return nil, fmt.Errorf("phones: %w", err)
	}

	log.Info("merging post tables", "contracts", contracts.NumRows(),
		"phones", phones.NumRows(), "addresses", addresses.NumRows())

	merged := table.Join(table.Join(contracts, phones, decoder.ColID), addresses, decoder.ColID)

	return run(merged, log, []decoder.Decoder{decoder.NewFrame(log)})
}

// ProcessZaim runs the legacy single-identifier phone strategy instead of
// the generic phone pass, followed by the remaining decoders.
func (p *Processor) ProcessZaim(t *table.Table) (*table.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("no input table")
	}

	log := p.log.With("run_id", uuid.NewString())

	t = decoder.NewPhones(p.cfg.Phones.Region, log).DecodeZaim(t, p.cfg.Phones.ZaimRegion)
	if t == nil {
		return nil, fmt.Errorf("decoder phones/zaim returned no table")
	}

	return run(t, log, []decoder.Decoder{
		decoder.NewPerson(p.cfg.Person.Work, log),
		decoder.NewDates(log),
		decoder.NewPassport(log),
		decoder.NewDebt(log),
		p.register(log),
		decoder.NewFrame(log),
	})
}

func (p *Processor) register(log *slog.Logger) *decoder.Register {
	return decoder.NewRegister(
		p.cfg.Register.Currency,
		p.cfg.Register.Placement,
		p.cfg.Register.Name,
		p.cfg.RegDate(),
		log,
	)
}

// run executes decoders in order. A nil result means a decoder lost the
// table entirely, which aborts the whole conversion.
func run(t *table.Table, log *slog.Logger, decoders []decoder.Decoder) (*table.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("no input table")
	}

	for _, d := range decoders {
		log.Debug("decoder enter", "decoder", d.Name())

		decoded := d.Decode(t)
		if decoded == nil {
			return nil, fmt.Errorf("decoder %s returned no table", d.Name())
		}

		log.Debug("decoder exit", "decoder", d.Name())
		t = decoded
	}

	return t, nil
}
