// Package commands defines the kexd CLI.
//
// Commands:
//
//	init         generate a host key and store it passphrase-protected
//	fingerprint  print the stored host key's fingerprint
//	groups       list canonical groups / run the known-group check
//	derive       run the bcrypt KDF over a passphrase and salt
//	demo         run a loopback client/server handshake
package commands
