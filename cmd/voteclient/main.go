// Package main (cmd/voteclient) submits a vote to the enclave and verifies
// the signed response.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ruteri/tee-intent-signer/api/votehandler"
	"github.com/ruteri/tee-intent-signer/cmd/flags"
	"github.com/ruteri/tee-intent-signer/cryptoutils"
	"github.com/ruteri/tee-intent-signer/intent"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/urfave/cli/v2"
)

var flagServer = &cli.StringFlag{
	Name:  "server-addr",
	Value: "http://127.0.0.1:3000",
	Usage: "enclave server address",
}

var flagVote = &cli.StringFlag{
	Name:     "vote",
	Required: true,
	Usage:    "vote option to submit",
}

var flagPubkey = &cli.StringFlag{
	Name:  "pubkey",
	Usage: "hex-encoded enclave public key to verify against. If empty it is fetched from the server",
}

var flagTimeout = &cli.DurationFlag{
	Name:  "timeout",
	Value: 10 * time.Second,
	Usage: "request timeout",
}

func main() {
	app := &cli.App{
		Name:  "vote client",
		Usage: "Submit a vote to the enclave and verify the signed response",
		Flags: []cli.Flag{
			flagServer,
			flagVote,
			flagPubkey,
			flagTimeout,
			flags.KeySchemeFlag,
		},
		Action: func(cCtx *cli.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), cCtx.Duration(flagTimeout.Name))
			defer cancel()

			client := votehandler.NewClient(cCtx.String(flagServer.Name))

			scheme, err := interfaces.ParseKeyScheme(cCtx.String(flags.KeySchemeFlag.Name))
			if err != nil {
				return err
			}

			var pubkey interfaces.PublicKey
			if pubkeyHex := cCtx.String(flagPubkey.Name); pubkeyHex != "" {
				pubkey, err = interfaces.NewPublicKeyFromHex(pubkeyHex)
				if err != nil {
					return err
				}
			} else {
				// Trust on first use: only meaningful if the key was attested elsewhere.
				pk, err := client.PublicKey(ctx)
				if err != nil {
					return err
				}
				scheme, pubkey = pk.Scheme, pk.PublicKey
			}

			verifier, err := cryptoutils.NewVerifier(scheme, pubkey)
			if err != nil {
				return err
			}

			signed, err := client.SubmitVote(ctx, cCtx.String(flagVote.Name))
			if err != nil {
				return err
			}

			if err := intent.Verify(verifier, signed); err != nil {
				return fmt.Errorf("signed vote does not verify against %s: %w", pubkey, err)
			}

			encoded, err := json.Marshal(signed)
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
