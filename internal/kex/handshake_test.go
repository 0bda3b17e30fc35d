package kex_test

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"testing"

	"kexd/internal/group"
	"kexd/internal/hostkey"
	"kexd/internal/kex"
	"kexd/internal/wire"
)

func TestMain(m *testing.M) {
	if err := group.Init(); err != nil {
		panic(err)
	}
	code := m.Run()
	group.Finalize()
	os.Exit(code)
}

// queue collects outbound payloads for the test to shuttle by hand.
type queue struct {
	msgs [][]byte
}

func (q *queue) Send(p []byte) error {
	q.msgs = append(q.msgs, p)
	return nil
}

func (q *queue) next(t *testing.T) []byte {
	t.Helper()
	if len(q.msgs) == 0 {
		t.Fatal("no payload queued")
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m
}

func testConfig(alg kex.Algorithm) kex.Config {
	return kex.Config{
		Algorithm: alg,
		Transcript: kex.Transcript{
			ClientVersion: "KEXD-test-client",
			ServerVersion: "KEXD-test-server",
			ClientKexInit: []byte("client-kexinit"),
			ServerKexInit: []byte("server-kexinit"),
		},
	}
}

// runHandshake drives a full loopback exchange and returns both results.
func runHandshake(t *testing.T, cfg kex.Config) (*kex.Result, *kex.Result) {
	t.Helper()

	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("hostkey.Generate: %v", err)
	}

	var toServer, toClient queue
	client := kex.NewClient(cfg, &toServer)
	server := kex.NewServer(cfg, key, &toClient)
	t.Cleanup(client.Close)
	t.Cleanup(server.Close)

	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	if err := client.Start(); err != nil {
		t.Fatalf("client.Start: %v", err)
	}
	if err := server.HandleInit(toServer.next(t)); err != nil {
		t.Fatalf("server.HandleInit: %v", err)
	}
	if err := client.HandleReply(toClient.next(t)); err != nil {
		t.Fatalf("client.HandleReply: %v", err)
	}
	if err := client.HandleNewKeys(toClient.next(t)); err != nil {
		t.Fatalf("client.HandleNewKeys: %v", err)
	}
	if err := server.HandleNewKeys(toServer.next(t)); err != nil {
		t.Fatalf("server.HandleNewKeys: %v", err)
	}

	if client.State() != kex.StateEstablished || server.State() != kex.StateEstablished {
		t.Fatalf("states %v / %v, want established", client.State(), server.State())
	}

	cres, err := client.Result()
	if err != nil {
		t.Fatalf("client.Result: %v", err)
	}
	sres, err := server.Result()
	if err != nil {
		t.Fatalf("server.Result: %v", err)
	}
	return cres, sres
}

func TestHandshakeAgreement(t *testing.T) {
	for _, alg := range []kex.Algorithm{kex.DHGroup1SHA1, kex.DHGroup14SHA256} {
		t.Run(alg.String(), func(t *testing.T) {
			cres, sres := runHandshake(t, testConfig(alg))

			// (g^a)^b and (g^b)^a must land on the same secret.
			if cres.SharedSecret.Cmp(sres.SharedSecret) != 0 {
				t.Fatal("shared secrets differ")
			}
			if !bytes.Equal(cres.SessionID, sres.SessionID) {
				t.Fatal("session identifiers differ")
			}
			if err := hostkey.Verify(cres.HostKeyBlob, cres.SessionID, cres.Signature); err != nil {
				t.Fatalf("signature rejected: %v", err)
			}
		})
	}
}

func TestGroupExchangeHandshake(t *testing.T) {
	cfg := testConfig(kex.DHGEXSHA256)
	cfg.Transcript.GexMin = 1024
	cfg.Transcript.GexPreferred = 2048
	cfg.Transcript.GexMax = 8192

	grp, err := group.FallbackGroup(cfg.Transcript.GexPreferred)
	if err != nil {
		t.Fatalf("FallbackGroup: %v", err)
	}
	if !group.IsKnownGroup(grp.P, grp.G) {
		t.Fatal("fallback group failed the known-group check")
	}
	cfg.Group = grp

	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("hostkey.Generate: %v", err)
	}

	var toServer, toClient queue
	client := kex.NewClient(cfg, &toServer)
	server := kex.NewServer(cfg, key, &toClient)
	t.Cleanup(client.Close)
	t.Cleanup(server.Close)

	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	if err := client.Start(); err != nil {
		t.Fatalf("client.Start: %v", err)
	}
	if err := server.HandleInit(toServer.next(t)); err != nil {
		t.Fatalf("server.HandleInit: %v", err)
	}

	// Group-exchange replies use their own tag.
	reply := toClient.next(t)
	if reply[0] != wire.MsgKexDHGexReply {
		t.Fatalf("reply tag %d, want %d", reply[0], wire.MsgKexDHGexReply)
	}
	if err := client.HandleReply(reply); err != nil {
		t.Fatalf("client.HandleReply: %v", err)
	}

	cres, err := client.Result()
	if err != nil {
		t.Fatalf("client.Result: %v", err)
	}
	sres, err := server.Result()
	if err != nil {
		t.Fatalf("server.Result: %v", err)
	}
	if cres.SharedSecret.Cmp(sres.SharedSecret) != 0 || !bytes.Equal(cres.SessionID, sres.SessionID) {
		t.Fatal("group-exchange sides disagree")
	}
}

func TestGroupExchangeWithoutGroup(t *testing.T) {
	var toServer queue
	client := kex.NewClient(testConfig(kex.DHGEXSHA256), &toServer)
	if err := client.Start(); !errors.Is(err, kex.ErrNoGroup) {
		t.Fatalf("Start without group: %v, want ErrNoGroup", err)
	}
	if client.State() != kex.StateError {
		t.Fatalf("state %v, want error", client.State())
	}
}

func TestTruncatedReplyFailsHandshake(t *testing.T) {
	var toServer, toClient queue
	cfg := testConfig(kex.DHGroup14SHA256)

	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("hostkey.Generate: %v", err)
	}
	client := kex.NewClient(cfg, &toServer)
	server := kex.NewServer(cfg, key, &toClient)

	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	if err := client.Start(); err != nil {
		t.Fatalf("client.Start: %v", err)
	}
	if err := server.HandleInit(toServer.next(t)); err != nil {
		t.Fatalf("server.HandleInit: %v", err)
	}

	reply := toClient.next(t)
	if err := client.HandleReply(reply[:len(reply)/2]); err == nil {
		t.Fatal("truncated reply accepted")
	}
	if client.State() != kex.StateError {
		t.Fatalf("state %v, want error", client.State())
	}
	if _, err := client.Result(); !errors.Is(err, kex.ErrNotComplete) {
		t.Fatalf("Result after failure: %v, want ErrNotComplete", err)
	}

	// The error state absorbs; nothing restarts it.
	if err := client.HandleNewKeys(wire.MarshalNewKeys()); !errors.Is(err, kex.ErrBadState) {
		t.Fatalf("HandleNewKeys in error state: %v, want ErrBadState", err)
	}
}

func TestServerRejectsMalformedInit(t *testing.T) {
	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("hostkey.Generate: %v", err)
	}
	var toClient queue
	server := kex.NewServer(testConfig(kex.DHGroup14SHA256), key, &toClient)
	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	if err := server.HandleInit([]byte{wire.MsgKexDHInit, 0, 0}); err == nil {
		t.Fatal("malformed init accepted")
	}
	if server.State() != kex.StateError {
		t.Fatalf("state %v, want error", server.State())
	}
	if len(toClient.msgs) != 0 {
		t.Fatal("server sent output for a failed handshake")
	}
}

func TestServerRejectsOutOfRangePeerValue(t *testing.T) {
	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("hostkey.Generate: %v", err)
	}
	var toClient queue
	server := kex.NewServer(testConfig(kex.DHGroup14SHA256), key, &toClient)
	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}

	init := wire.KexDHInit{E: big.NewInt(1)}
	if err := server.HandleInit(init.Marshal()); !errors.Is(err, kex.ErrPeerValueRange) {
		t.Fatalf("E=1 accepted: %v, want ErrPeerValueRange", err)
	}
}

func TestEntryPointsRejectWrongState(t *testing.T) {
	var toServer queue
	client := kex.NewClient(testConfig(kex.DHGroup14SHA256), &toServer)

	if err := client.HandleReply(nil); !errors.Is(err, kex.ErrBadState) {
		t.Fatalf("HandleReply while idle: %v, want ErrBadState", err)
	}
	// The stray message already poisoned the handshake.
	if err := client.Start(); !errors.Is(err, kex.ErrBadState) {
		t.Fatalf("Start after error: %v, want ErrBadState", err)
	}
}

func TestAbortDestroysHandshake(t *testing.T) {
	var toServer queue
	client := kex.NewClient(testConfig(kex.DHGroup14SHA256), &toServer)
	if err := client.Start(); err != nil {
		t.Fatalf("client.Start: %v", err)
	}

	client.Abort()
	if client.State() != kex.StateError {
		t.Fatalf("state %v, want error", client.State())
	}
	if _, err := client.Result(); !errors.Is(err, kex.ErrNotComplete) {
		t.Fatalf("Result after abort: %v, want ErrNotComplete", err)
	}
	client.Abort() // idempotent
	client.Close()
}
