package detector

import (
	"strconv"

	"github.com/Ozodimgba/geyser/internal/consts"
	"github.com/Ozodimgba/geyser/internal/logic/pumpfun"
	"github.com/Ozodimgba/geyser/internal/logic/report"
	"github.com/Ozodimgba/geyser/internal/types"
	"github.com/Ozodimgba/geyser/pkg/logger"
	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
)

// Detector runs the per-update pipeline: filter the streamed update, find
// the first create instruction, resolve its named accounts and hand the
// record to the reporter.
//
// Malformed or partial updates are skipped, never fatal: a single bad
// event must not take the stream down.
type Detector struct {
	label    string
	program  types.Pubkey
	layout   []pumpfun.NamedAccount
	reporter *report.Reporter
}

func NewDetector(reporter *report.Reporter) *Detector {
	return &Detector{
		label:    consts.TransactionFilterLabel,
		program:  consts.PumpFunProgram,
		layout:   pumpfun.CreateAccountLayout,
		reporter: reporter,
	}
}

// HandleUpdate processes one streamed update. Every update is independent;
// replaying the same update produces the same record again.
func (d *Detector) HandleUpdate(update *pb.SubscribeUpdate) {
	rec, ok := d.detect(update)
	if !ok {
		return
	}
	if err := d.reporter.Print(rec); err != nil {
		logger.Errorf("failed to write report: %v", err)
	}
}

// detect applies the transaction filter and account resolution. The bool
// result distinguishes "no match" (the overwhelmingly common case) from a
// resolved record.
func (d *Detector) detect(update *pb.SubscribeUpdate) (*report.Record, bool) {
	txUpdate := update.GetTransaction()
	if txUpdate == nil {
		return nil, false
	}
	if !hasLabel(update.GetFilters(), d.label) {
		return nil, false
	}

	info := txUpdate.GetTransaction()
	if info == nil || info.GetTransaction() == nil {
		return nil, false
	}
	msg := info.GetTransaction().GetMessage()
	if msg == nil {
		return nil, false
	}

	keys, err := buildAccountKeys(
		msg.GetAccountKeys(),
		info.GetMeta().GetLoadedWritableAddresses(),
		info.GetMeta().GetLoadedReadonlyAddresses(),
	)
	if err != nil {
		logger.Debugf("skipping update at slot %d: %v", txUpdate.GetSlot(), err)
		return nil, false
	}

	ix := d.firstCreateInstruction(msg.GetInstructions(), keys)
	if ix == nil {
		return nil, false
	}

	fields, ok := d.resolveAccounts(ix, keys, txUpdate.GetSlot())
	if !ok {
		return nil, false
	}

	// Token metadata is best effort: synthetic or truncated args only cost
	// the metadata rows, never the record itself.
	if args, err := pumpfun.DecodeCreateArgs(ix.GetData()); err == nil {
		fields = append(fields,
			report.Field{Name: "name", Value: args.Name},
			report.Field{Name: "symbol", Value: args.Symbol},
			report.Field{Name: "uri", Value: args.URI},
			report.Field{Name: "creator", Value: args.Creator.String()},
		)
	}

	return &report.Record{
		Signature: base58.Encode(info.GetSignature()),
		Slot:      strconv.FormatUint(txUpdate.GetSlot(), 10),
		Fields:    fields,
	}, true
}

// firstCreateInstruction scans the compiled instructions in original order
// and returns the first one owned by the pump.fun program whose data
// carries the create discriminator.
func (d *Detector) firstCreateInstruction(instrs []*pb.CompiledInstruction, keys []types.Pubkey) *pb.CompiledInstruction {
	for _, ix := range instrs {
		pid := int(ix.GetProgramIdIndex())
		if pid >= len(keys) || keys[pid] != d.program {
			continue
		}
		if pumpfun.MatchesCreate(ix.GetData()) {
			return ix
		}
	}
	return nil
}

// resolveAccounts maps the layout's positional indices through the
// instruction's account list into the full key table. Any index out of
// bounds drops the whole record.
func (d *Detector) resolveAccounts(ix *pb.CompiledInstruction, keys []types.Pubkey, slot uint64) ([]report.Field, bool) {
	accounts := ix.GetAccounts()
	fields := make([]report.Field, 0, len(d.layout))
	for _, na := range d.layout {
		if na.Index >= len(accounts) {
			logger.Debugf("skipping update at slot %d: account %q index %d out of bounds (%d accounts)",
				slot, na.Name, na.Index, len(accounts))
			return nil, false
		}
		k := int(accounts[na.Index])
		if k >= len(keys) {
			logger.Debugf("skipping update at slot %d: account %q key index %d out of bounds (%d keys)",
				slot, na.Name, k, len(keys))
			return nil, false
		}
		fields = append(fields, report.Field{Name: na.Name, Value: keys[k].String()})
	}
	return fields, true
}

func hasLabel(filters []string, label string) bool {
	for _, f := range filters {
		if f == label {
			return true
		}
	}
	return false
}
