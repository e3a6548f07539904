package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackFlagsExhaustive(t *testing.T) {
	bools := []bool{false, true}
	for op := range Opcode(16) {
		for rc := range RCode(16) {
			for _, q := range bools {
				for _, aa := range bools {
					for _, tc := range bools {
						for _, rd := range bools {
							for _, ra := range bools {
								f := Flags{
									IsQuery:            q,
									Opcode:             op,
									Authoritative:      aa,
									Truncated:          tc,
									RecursionDesired:   rd,
									RecursionAvailable: ra,
									RCode:              rc,
								}
								w := PackFlags(f)
								require.Equal(t, f, UnpackFlags(w))
								require.Zero(t, w&ZMask, "reserved bits must be zero")
							}
						}
					}
				}
			}
		}
	}
}

func TestPackFlagsLayout(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  uint16
	}{
		{"plain query", Flags{IsQuery: true}, 0x0000},
		{"mdns response", Flags{Authoritative: true}, 0x8400},
		{"opcode 15", Flags{IsQuery: true, Opcode: 15}, 0x7800},
		{"rcode 15", Flags{IsQuery: true, RCode: 15}, 0x000F},
		{"rd ra", Flags{IsQuery: true, RecursionDesired: true, RecursionAvailable: true}, 0x0180},
		{"truncated", Flags{IsQuery: true, Truncated: true}, 0x0200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackFlags(tt.flags))
		})
	}
}

func TestUnpackFlagsIgnoresReserved(t *testing.T) {
	f := UnpackFlags(0x8470)
	assert.False(t, f.IsQuery)
	assert.True(t, f.Authoritative)
	assert.Equal(t, uint16(0x8400), PackFlags(f))
}

func TestFlagsValidate(t *testing.T) {
	assert.NoError(t, Flags{Opcode: 15, RCode: 15}.Validate())
	assert.ErrorIs(t, Flags{Opcode: 16}.Validate(), ErrDNSError)
	assert.ErrorIs(t, Flags{RCode: 16}.Validate(), ErrDNSError)
}

func TestHeaderMarshalParse(t *testing.T) {
	h := Header{ID: 0x1234, Flags: 0x8400, QDCount: 1, ANCount: 2, NSCount: 3, ARCount: 4}
	b, err := h.Marshal()
	require.NoError(t, err)
	require.Len(t, b, HeaderSize)

	r := NewReader(b)
	got, err := ParseHeader(r)
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.Equal(t, HeaderSize, r.Offset())
	assert.True(t, got.IsResponse())
	assert.True(t, got.Authoritative())
	assert.False(t, got.Truncated())
}

func TestParseHeaderShort(t *testing.T) {
	_, err := ParseHeader(NewReader(make([]byte, 11)))
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestQuestionUnicastBit(t *testing.T) {
	q := Question{Name: "host7.local", Type: uint16(TypeANY), Class: uint16(ClassIN) | UnicastResponseBit}
	assert.True(t, q.UnicastResponse())
	assert.Equal(t, uint16(ClassIN), q.BaseClass())

	q.Class = uint16(ClassIN)
	assert.False(t, q.UnicastResponse())
}

func TestNewQuestionRanges(t *testing.T) {
	_, err := NewQuestion("a.local", 65536, 1)
	assert.ErrorIs(t, err, ErrDNSError)
	_, err = NewQuestion("a.local", 1, -1)
	assert.ErrorIs(t, err, ErrDNSError)
	q, err := NewQuestion("a.local", 65535, 65535)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), q.Type)
}

func TestQuestionRoundTrip(t *testing.T) {
	q := Question{Name: "_semcache._tcp", Type: uint16(TypePTR), Class: uint16(ClassIN)}
	b, err := q.Marshal()
	require.NoError(t, err)
	got, err := ParseQuestion(NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, q, got)

	_, err = ParseQuestion(NewReader(b[:len(b)-1]))
	assert.ErrorIs(t, err, ErrDNSError)
}
