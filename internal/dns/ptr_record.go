package dns

// PTRRecord maps a DNS-SD service type (the record name) to one service
// instance name (RFC 6763 Section 4.1).
type PTRRecord struct {
	H        RRHeader
	Instance string
}

// NewPTRRecord creates a PTR record from serviceType to instance in class IN.
func NewPTRRecord(serviceType, instance string, ttl uint32) *PTRRecord {
	return &PTRRecord{H: NewRRHeader(serviceType, ClassIN, ttl), Instance: instance}
}

// ServiceType returns the record name, which is the service type.
func (r *PTRRecord) ServiceType() string { return r.H.Name }

// Type returns TypePTR.
func (r *PTRRecord) Type() RecordType { return TypePTR }

// Header returns the record header.
func (r *PTRRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *PTRRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData marshals the instance name to wire format.
func (r *PTRRecord) MarshalRData() ([]byte, error) {
	return EncodeName(r.Instance)
}

// ParsePTRRecord parses a PTR record from r.
func ParsePTRRecord(r *Reader) (*PTRRecord, error) {
	p, err := readTypedPreamble(r, TypePTR)
	if err != nil {
		return nil, err
	}
	start := r.Offset()
	instance, err := DecodeName(r)
	if err != nil {
		return nil, err
	}
	if err := checkRDataConsumed(r, start, p); err != nil {
		return nil, err
	}
	return &PTRRecord{H: p.header, Instance: instance}, nil
}
