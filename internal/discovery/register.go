package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/helpers"
)

// ServiceInfo describes a registered service.
type ServiceInfo struct {
	ServiceName string `json:"service_name"`
	Type        string `json:"type"`
	Domain      string `json:"domain"`
	Port        int    `json:"port"`
}

// InstanceDomain returns the SRV owner name "<name>.<serviceType>.local".
func InstanceDomain(name, serviceType string) string {
	return name + "." + serviceType + ".local"
}

// Register claims host and the instance "<name>.<serviceType>.local" and,
// when both are free, advertises an A record per interface plus the SRV and
// PTR records for the service, then announces them once to the group.
func (c *Client) Register(ctx context.Context, host, name, serviceType string, port int) (ServiceInfo, error) {
	if port < 1 || port > 65535 {
		return ServiceInfo{}, fmt.Errorf("register %s: port %d out of range", name, port)
	}
	instance := InstanceDomain(name, serviceType)
	class := uint16(dns.ClassIN)

	if err := c.IssueProbe(ctx, host, dns.TypeANY, class); err != nil {
		return ServiceInfo{}, c.probeError(err, ErrHostTaken, host)
	}
	if err := c.IssueProbe(ctx, instance, dns.TypeANY, class); err != nil {
		return ServiceInfo{}, c.probeError(err, ErrInstanceTaken, instance)
	}

	ifaces := c.engine.Interfaces()
	if len(ifaces) == 0 {
		c.logger.Warn("registering without IPv4 interfaces", "host", host)
	}
	var records []dns.Record
	for _, ifi := range ifaces {
		records = append(records, dns.NewARecord(host, ifi.Address, c.opts.HostTTL))
	}
	records = append(records,
		dns.NewSRVRecord(instance, 0, 0, helpers.ClampIntToUint16(port), host, c.opts.HostTTL),
		dns.NewPTRRecord(serviceType, instance, c.opts.ServiceTTL),
	)
	// Nothing is stored until the announcement is out.
	announce := dns.NewResponsePacket()
	announce.Answers = records
	if err := c.engine.SendPacket(ctx, announce, c.engine.MulticastAddr()); err != nil {
		return ServiceInfo{}, fmt.Errorf("announce %s: %w", instance, err)
	}

	for _, rr := range records {
		// A second service on the same host reuses its A records.
		if c.ownsRecord(rr) {
			continue
		}
		c.engine.AddRecord(rr.Header().Name, rr)
	}

	c.logger.Info("service registered",
		"instance", instance,
		"host", host,
		"port", port,
		"addresses", len(ifaces),
	)
	return ServiceInfo{ServiceName: name, Type: serviceType, Domain: host, Port: port}, nil
}

func (c *Client) probeError(err, taken error, name string) error {
	if errors.Is(err, ErrNameTaken) {
		return fmt.Errorf("%w: %s", taken, name)
	}
	return fmt.Errorf("probe %s: %w", name, err)
}
