package discovery

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jroosing/semcache/internal/dns"
)

// ServiceInstance is one fully resolved service found by Browse.
type ServiceInstance struct {
	ServiceType  string `json:"service_type"`
	InstanceName string `json:"instance_name"`
	DomainName   string `json:"domain_name"`
	IPAddress    string `json:"ip_address"`
	Port         int    `json:"port"`
}

// Browse finds instances of serviceType on the network. It collects PTR
// answers, then resolves every distinct instance's SRV record and every
// SRV target's A record, each stage in parallel. Instances whose chain does
// not fully resolve are logged and left out.
func (c *Client) Browse(ctx context.Context, serviceType string) ([]ServiceInstance, error) {
	class := uint16(dns.ClassIN)

	ptrs, err := c.QueryForResponses(ctx, serviceType, dns.TypePTR, class, true, c.opts.BrowseWait, c.opts.PTRRetries)
	if err != nil {
		return nil, err
	}
	instances := distinctInstances(ptrs)

	srvs := make([]*dns.SRVRecord, len(instances))
	g, gctx := errgroup.WithContext(ctx)
	for i, instance := range instances {
		g.Go(func() error {
			answers, err := c.QueryForResponses(gctx, instance, dns.TypeSRV, class, false, c.opts.ResolveWait, c.opts.ResolveRetries)
			if err != nil {
				return err
			}
			for _, rr := range answers {
				if srv, ok := rr.(*dns.SRVRecord); ok {
					srvs[i] = srv
					return nil
				}
			}
			c.logger.Info("browse: dropping instance without SRV", "instance", instance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*ServiceInstance, len(srvs))
	g, gctx = errgroup.WithContext(ctx)
	for i, srv := range srvs {
		if srv == nil {
			continue
		}
		g.Go(func() error {
			answers, err := c.QueryForResponses(gctx, srv.Target, dns.TypeA, class, false, c.opts.ResolveWait, c.opts.ResolveRetries)
			if err != nil {
				return err
			}
			for _, rr := range answers {
				if a, ok := rr.(*dns.ARecord); ok {
					results[i] = &ServiceInstance{
						ServiceType:  serviceType,
						InstanceName: InstanceName(srv.H.Name),
						DomainName:   srv.Target,
						IPAddress:    a.IP,
						Port:         int(srv.Port),
					}
					return nil
				}
			}
			c.logger.Info("browse: dropping instance without address", "instance", srv.H.Name, "target", srv.Target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ServiceInstance, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func distinctInstances(ptrs []dns.Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, rr := range ptrs {
		ptr, ok := rr.(*dns.PTRRecord)
		if !ok {
			continue
		}
		key := dns.NormalizeName(ptr.Instance)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ptr.Instance)
	}
	return out
}

// InstanceName recovers the instance label from a full SRV owner name such
// as "My Cache._semcache._tcp.local" by cutting at the second-to-last
// underscore.
func InstanceName(full string) string {
	last := strings.LastIndex(full, "_")
	if last <= 0 {
		return full
	}
	cut := strings.LastIndex(full[:last], "_")
	if cut < 0 {
		return full
	}
	return strings.TrimSuffix(full[:cut], ".")
}
