// Command mdnsquery runs one-shot mDNS/DNS-SD operations against the local
// network: browse a service type, look up a name, probe for a conflict or
// advertise a service until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/discovery"
	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/jroosing/semcache/internal/mdns"
)

const usage = `usage: mdnsquery <command> [flags]

commands:
  browse    list instances of a service type
  lookup    send one question and print the answers
  probe     check whether a name is already claimed
  register  advertise a service until interrupted
`

// common holds the flags every subcommand accepts.
type common struct {
	port  int
	group string
	debug bool
}

func (c *common) bind(fs *flag.FlagSet) {
	fs.IntVar(&c.port, "mdns-port", mdns.DefaultPort, "mDNS port (5353 for the standard responder port)")
	fs.StringVar(&c.group, "group", mdns.DefaultGroup, "Multicast group")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "browse":
		err = runBrowse(ctx, os.Args[2:])
	case "lookup":
		err = runLookup(ctx, os.Args[2:])
	case "probe":
		err = runProbe(ctx, os.Args[2:])
	case "register":
		err = runRegister(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdnsquery %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// start opens the mDNS socket and returns a discovery client on it. The
// caller must Stop the client.
func start(ctx context.Context, c common) (*discovery.Client, error) {
	level := "WARN"
	if c.debug {
		level = "DEBUG"
	}
	logger := logging.New(logging.Config{Level: level})

	ctrl, err := mdns.NewController(&mdns.UDPTransport{Logger: logger}, mdns.Config{
		Port:   c.port,
		Group:  c.group,
		Logger: logging.Component(logger, "mdns"),
	})
	if err != nil {
		return nil, err
	}
	if err := ctrl.Start(ctx); err != nil {
		return nil, err
	}
	return discovery.NewClient(ctrl, discovery.Config{Logger: logging.Component(logger, "discovery")}), nil
}

func runBrowse(ctx context.Context, args []string) error {
	var c common
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	c.bind(fs)
	serviceType := fs.String("type", config.DefaultServiceType, "Service type, e.g. _http._tcp")
	_ = fs.Parse(args)

	client, err := start(ctx, c)
	if err != nil {
		return err
	}
	defer client.Stop()

	found, err := client.Browse(ctx, *serviceType)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Printf("no %s instances found\n", *serviceType)
		return nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].InstanceName < found[j].InstanceName })
	for _, s := range found {
		fmt.Printf("%-24s %-15s %5d  %s\n", s.InstanceName, s.IPAddress, s.Port, s.DomainName)
	}
	return nil
}

func runLookup(ctx context.Context, args []string) error {
	var c common
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	c.bind(fs)
	name := fs.String("name", "", "Name to query")
	qtype := fs.String("qtype", "A", "Query type mnemonic (A, PTR, SRV, ANY, ...)")
	multiple := fs.Bool("multiple", false, "Collect answers for the whole window")
	wait := fs.Duration("wait", 2*time.Second, "Answer window")
	retries := fs.Int("retries", 1, "Retries when a window ends empty")
	_ = fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return errors.New("-name is required")
	}
	rt, ok := dns.ParseRecordType(strings.ToUpper(*qtype))
	if !ok {
		return fmt.Errorf("unknown query type %q", *qtype)
	}

	client, err := start(ctx, c)
	if err != nil {
		return err
	}
	defer client.Stop()

	answers, err := client.QueryForResponses(ctx, *name, rt, uint16(dns.ClassIN), *multiple, *wait, *retries)
	if err != nil {
		return err
	}
	rows := make([]string, 0, len(answers))
	for _, rr := range answers {
		rows = append(rows, dns.RecordString(rr))
	}
	sort.Strings(rows)
	for _, s := range rows {
		fmt.Println(s)
	}
	if len(rows) == 0 {
		fmt.Println("no answers")
	}
	return nil
}

func runProbe(ctx context.Context, args []string) error {
	var c common
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	c.bind(fs)
	name := fs.String("name", "", "Name to probe, e.g. myhost.local")
	_ = fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return errors.New("-name is required")
	}

	client, err := start(ctx, c)
	if err != nil {
		return err
	}
	defer client.Stop()

	if err := client.IssueProbe(ctx, *name, dns.TypeANY, uint16(dns.ClassIN)); err != nil {
		return err
	}
	fmt.Printf("%s is free\n", *name)
	return nil
}

func runRegister(ctx context.Context, args []string) error {
	var c common
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	c.bind(fs)
	host := fs.String("host", "", "Host name to advertise, e.g. myhost.local")
	name := fs.String("name", "", "Instance name, e.g. \"My Cache\"")
	serviceType := fs.String("type", config.DefaultServiceType, "Service type")
	port := fs.Int("port", 0, "Port the service listens on")
	_ = fs.Parse(args)

	if *host == "" || *name == "" {
		return errors.New("-host and -name are required")
	}

	client, err := start(ctx, c)
	if err != nil {
		return err
	}
	defer func() {
		client.ClearAllRecords()
		_ = client.Stop()
	}()

	info, err := client.Register(ctx, *host, *name, *serviceType, *port)
	if err != nil {
		return err
	}
	fmt.Printf("advertising %s.%s on %s:%d; press Ctrl-C to stop\n", info.ServiceName, info.Type, info.Domain, info.Port)
	<-ctx.Done()
	return nil
}
