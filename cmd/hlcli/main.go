package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"hyperliquid-go/pkg/hyperliquid"
)

const apiTimeout = 10 * time.Second

var configFile = flag.String("f", "etc/hyperliquid.yaml", "the config file")

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: hlcli [-f config] <command> [args]

Commands:
  account            print the clearinghouse state
  mids               print all cached mid prices
  orders             print resting open orders
  book <coin>        print the L2 book for one coin
  close <coin>       market-close the position in one coin
`)
	os.Exit(2)
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	hyperliquid.LoadDotenvOnce()
	cfg, err := hyperliquid.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("[main] load config: %v", err)
	}
	client, err := hyperliquid.NewClientFromConfig(cfg)
	if err != nil {
		log.Fatalf("[main] build client: %v", err)
	}
	log.Printf("[main] signing as %s (testnet=%v)", client.Address(), cfg.Testnet)

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()
	client.WarmUp(ctx)

	if err := run(ctx, client, flag.Args()); err != nil {
		log.Fatalf("[main] %s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, client *hyperliquid.Client, args []string) error {
	switch args[0] {
	case "account":
		state, err := client.UserState(ctx)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "mids":
		mids, err := client.AllMids(ctx)
		if err != nil {
			return err
		}
		return printJSON(mids)
	case "orders":
		orders, err := client.OpenOrders(ctx)
		if err != nil {
			return err
		}
		return printJSON(orders)
	case "book":
		if len(args) < 2 {
			return fmt.Errorf("book requires a coin")
		}
		book, err := client.L2Snapshot(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(book)
	case "close":
		if len(args) < 2 {
			return fmt.Errorf("close requires a coin")
		}
		resp, err := client.ClosePositionMarket(ctx, args[1], nil)
		if err != nil {
			return err
		}
		return printJSON(resp)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
