package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"kexd/internal/group"
	"kexd/internal/hostkey"
	"kexd/internal/kex"
)

// queue collects outbound payloads so the demo can shuttle them to the
// other side by hand.
type queue struct {
	msgs [][]byte
}

func (q *queue) Send(p []byte) error {
	q.msgs = append(q.msgs, p)
	return nil
}

func (q *queue) next() []byte {
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m
}

func demoCmd() *cobra.Command {
	var kexName string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a loopback client/server handshake",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, ok := kex.AlgorithmByName(kexName)
			if !ok {
				return fmt.Errorf("unknown kex algorithm %q", kexName)
			}

			key, err := hostkey.Generate()
			if err != nil {
				return err
			}

			cfg := kex.Config{
				Algorithm: alg,
				Transcript: kex.Transcript{
					ClientVersion: "KEXD-demo-client",
					ServerVersion: "KEXD-demo-server",
					ClientKexInit: []byte(kexName),
					ServerKexInit: []byte(kexName),
				},
			}
			if alg.GroupExchange() {
				cfg.Transcript.GexMin = 1024
				cfg.Transcript.GexPreferred = 2048
				cfg.Transcript.GexMax = 8192
				grp, err := group.FallbackGroup(cfg.Transcript.GexPreferred)
				if err != nil {
					return err
				}
				if !group.IsKnownGroup(grp.P, grp.G) {
					return fmt.Errorf("fallback group failed the known-group check")
				}
				cfg.Group = grp
			}

			var toServer, toClient queue
			client := kex.NewClient(cfg, &toServer)
			server := kex.NewServer(cfg, key, &toClient)
			defer client.Close()
			defer server.Close()

			if err := server.Start(); err != nil {
				return err
			}
			if err := client.Start(); err != nil {
				return err
			}
			if err := server.HandleInit(toServer.next()); err != nil {
				return err
			}
			if err := client.HandleReply(toClient.next()); err != nil {
				return err
			}
			if err := client.HandleNewKeys(toClient.next()); err != nil {
				return err
			}
			if err := server.HandleNewKeys(toServer.next()); err != nil {
				return err
			}

			cres, err := client.Result()
			if err != nil {
				return err
			}
			sres, err := server.Result()
			if err != nil {
				return err
			}
			if err := hostkey.Verify(cres.HostKeyBlob, cres.SessionID, cres.Signature); err != nil {
				return fmt.Errorf("host key signature rejected: %w", err)
			}
			if cres.SharedSecret.Cmp(sres.SharedSecret) != 0 || !bytes.Equal(cres.SessionID, sres.SessionID) {
				return fmt.Errorf("client and server disagree on the session")
			}

			fmt.Printf("kex:         %s\n", alg)
			fmt.Printf("host key:    %s\n", key.Fingerprint())
			fmt.Printf("session id:  %s\n", hex.EncodeToString(cres.SessionID))
			fmt.Printf("shared secret: %d bits, both sides agree\n", cres.SharedSecret.BitLen())
			return nil
		},
	}

	cmd.Flags().StringVar(&kexName, "kex", "diffie-hellman-group14-sha256", "key exchange algorithm")
	return cmd
}
