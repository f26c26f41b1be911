package detector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Ozodimgba/geyser/internal/consts"
	"github.com/Ozodimgba/geyser/internal/logic/report"
	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createPrefix = []byte{24, 30, 200, 40, 5, 28, 7, 119}

func testKey(fill byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = fill
	}
	return key
}

// buildCreateUpdate assembles a transaction update whose instruction #0
// calls the pump.fun program with create data, with accounts[0] pointing
// at accountKeys[3] (the mint).
func buildCreateUpdate(t *testing.T, data []byte) *pb.SubscribeUpdate {
	t.Helper()

	program, err := base58.Decode(consts.PumpFunProgramStr)
	require.NoError(t, err)

	accountKeys := [][]byte{
		testKey(0x01), // fee payer
		testKey(0x02),
		testKey(0x03),
		testKey(0xAB), // mint
		program,
	}

	return &pb.SubscribeUpdate{
		Filters: []string{consts.TransactionFilterLabel},
		UpdateOneof: &pb.SubscribeUpdate_Transaction{
			Transaction: &pb.SubscribeUpdateTransaction{
				Slot: 333000111,
				Transaction: &pb.SubscribeUpdateTransactionInfo{
					Signature: bytes.Repeat([]byte{0x11}, 64),
					Transaction: &pb.Transaction{
						Signatures: [][]byte{bytes.Repeat([]byte{0x11}, 64)},
						Message: &pb.Message{
							AccountKeys: accountKeys,
							Instructions: []*pb.CompiledInstruction{
								{
									ProgramIdIndex: 4,
									Accounts:       []byte{3, 1, 2, 0},
									Data:           data,
								},
							},
						},
					},
				},
			},
		},
	}
}

func newTestDetector() (*Detector, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewDetector(report.NewReporter(&buf)), &buf
}

func TestHandleUpdate_EmitsRecordForCreate(t *testing.T) {
	d, buf := newTestDetector()

	d.HandleUpdate(buildCreateUpdate(t, createPrefix))

	out := buf.String()
	require.NotEmpty(t, out, "expected exactly one record")
	assert.Contains(t, out, "signature")
	assert.Contains(t, out, base58.Encode(bytes.Repeat([]byte{0x11}, 64)))
	assert.Contains(t, out, "slot")
	assert.Contains(t, out, "333000111")
	assert.Contains(t, out, "mint")
	assert.Contains(t, out, base58.Encode(testKey(0xAB)))

	// Exactly one record.
	assert.Equal(t, 1, strings.Count(out, "signature"))
}

func TestHandleUpdate_WrongDiscriminator(t *testing.T) {
	d, buf := newTestDetector()

	d.HandleUpdate(buildCreateUpdate(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}))

	assert.Empty(t, buf.String())
}

func TestHandleUpdate_NonTransactionUpdate(t *testing.T) {
	d, buf := newTestDetector()

	d.HandleUpdate(&pb.SubscribeUpdate{
		Filters:     []string{consts.TransactionFilterLabel},
		UpdateOneof: &pb.SubscribeUpdate_Ping{Ping: &pb.SubscribeUpdatePing{}},
	})

	assert.Empty(t, buf.String())
}

func TestHandleUpdate_WrongFilterLabel(t *testing.T) {
	d, buf := newTestDetector()

	update := buildCreateUpdate(t, createPrefix)
	update.Filters = []string{"someOtherFilter"}
	d.HandleUpdate(update)

	assert.Empty(t, buf.String())
}

func TestHandleUpdate_MissingTransaction(t *testing.T) {
	d, buf := newTestDetector()

	assert.NotPanics(t, func() {
		d.HandleUpdate(&pb.SubscribeUpdate{
			Filters: []string{consts.TransactionFilterLabel},
			UpdateOneof: &pb.SubscribeUpdate_Transaction{
				Transaction: &pb.SubscribeUpdateTransaction{Slot: 1},
			},
		})
	})
	assert.Empty(t, buf.String())
}

func TestHandleUpdate_MissingMessage(t *testing.T) {
	d, buf := newTestDetector()

	update := buildCreateUpdate(t, createPrefix)
	update.GetTransaction().GetTransaction().Transaction.Message = nil
	assert.NotPanics(t, func() { d.HandleUpdate(update) })
	assert.Empty(t, buf.String())
}

func TestHandleUpdate_AccountIndexOutOfBounds(t *testing.T) {
	d, buf := newTestDetector()

	update := buildCreateUpdate(t, createPrefix)
	ix := update.GetTransaction().GetTransaction().GetTransaction().GetMessage().Instructions[0]
	ix.Accounts = nil
	assert.NotPanics(t, func() { d.HandleUpdate(update) })
	assert.Empty(t, buf.String())

	// Index into instruction accounts resolves past the key table.
	update = buildCreateUpdate(t, createPrefix)
	ix = update.GetTransaction().GetTransaction().GetTransaction().GetMessage().Instructions[0]
	ix.Accounts = []byte{200}
	assert.NotPanics(t, func() { d.HandleUpdate(update) })
	assert.Empty(t, buf.String())
}

func TestHandleUpdate_ReplayedUpdateReportsTwice(t *testing.T) {
	d, buf := newTestDetector()

	update := buildCreateUpdate(t, createPrefix)
	d.HandleUpdate(update)
	first := buf.String()
	d.HandleUpdate(update)

	// No deduplication: two identical independent reports.
	assert.Equal(t, first+first, buf.String())
}

func TestHandleUpdate_LookupTableAccounts(t *testing.T) {
	d, buf := newTestDetector()

	// Move the mint key out of the static table into the loaded writable
	// addresses of a versioned transaction.
	update := buildCreateUpdate(t, createPrefix)
	info := update.GetTransaction().GetTransaction()
	msg := info.GetTransaction().GetMessage()
	mint := msg.AccountKeys[3]
	msg.AccountKeys = msg.AccountKeys[:3]

	program, err := base58.Decode(consts.PumpFunProgramStr)
	require.NoError(t, err)
	info.Meta = &pb.TransactionStatusMeta{
		LoadedWritableAddresses: [][]byte{mint},
		LoadedReadonlyAddresses: [][]byte{program},
	}
	// Static keys: 0..2, writable: 3 (mint), readonly: 4 (program).
	d.HandleUpdate(update)

	assert.Contains(t, buf.String(), base58.Encode(mint))
}
