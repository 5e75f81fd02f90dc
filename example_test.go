package ddns_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	ddns "github.com/Travis-Britz/mbddns"
)

func ExampleNew() {
	c, err := ddns.New(
		"dynamic-ip.example.com",
		ddns.UsingMythicBeasts(os.Getenv("MB_DDNS_KEY_ID"), os.Getenv("MB_DDNS_SECRET")),
		ddns.UsingFamilies(ddns.IPv4, ddns.IPv6),
		ddns.UsingTimeout(10*time.Second),
		ddns.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	// run once:
	if err := ddns.Report(os.Stdout, os.Stderr, c.Run(context.Background())); err != nil {
		os.Exit(1)
	}
}

func ExampleLoadConfig() {
	cfg, err := ddns.LoadConfig(ddns.LocateConfig(os.Args[1:]))
	if err != nil {
		log.Fatal(err)
	}
	var families []ddns.Family
	for _, f := range ddns.Families {
		if cfg.Enabled(f) {
			families = append(families, f)
		}
	}
	c, err := ddns.New(cfg.Domain,
		ddns.UsingMythicBeasts(cfg.KeyID, cfg.Secret),
		ddns.UsingFamilies(families...),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	c.Run(context.Background())
}

func ExampleReport() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"home.example.com A record unchanged"}`)
	}))
	defer srv.Close()

	c, err := ddns.New("home.example.com",
		ddns.UsingMythicBeasts("key-id", "secret"),
		ddns.UsingFamilies(ddns.IPv4),
		ddns.UsingEndpoint(ddns.IPv4, srv.URL+"/dns/v2/dynamic/"),
	)
	if err != nil {
		log.Fatal(err)
	}
	err = ddns.Report(os.Stdout, os.Stdout, c.Run(context.Background()))
	fmt.Println("error:", err)
	// Output:
	// [ipv4] home.example.com A record unchanged
	// error: <nil>
}
