package dns

// OpaqueRecord carries a record type the engine does not interpret
// (TXT, AAAA, NSEC, ...). Its RDATA is kept as raw bytes.
type OpaqueRecord struct {
	H    RRHeader
	T    RecordType
	Data []byte
}

// NewOpaqueRecord creates a new opaque record for unknown/unsupported types.
func NewOpaqueRecord(h RRHeader, rt RecordType, data []byte) *OpaqueRecord {
	return &OpaqueRecord{H: h, T: rt, Data: data}
}

// Type returns the record type.
func (r *OpaqueRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *OpaqueRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *OpaqueRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData returns the raw RDATA.
func (r *OpaqueRecord) MarshalRData() ([]byte, error) {
	return r.Data, nil
}

// ParseOpaqueRecord parses a record of any type, keeping RDATA verbatim.
func ParseOpaqueRecord(r *Reader) (*OpaqueRecord, error) {
	p, err := readPreamble(r)
	if err != nil {
		return nil, err
	}
	data := r.ReadBytes(p.rdlen).Bytes()
	return &OpaqueRecord{H: p.header, T: p.rtype, Data: data}, nil
}
