// Package gpg implements the store's encryption backend on top of the
// gpg binary.
//
// Every secret in the store is an individually encrypted file addressed
// to a list of gpg identities. This package shells out to gpg for each
// encrypt and decrypt, with a fixed option set:
//
//	--quiet --yes --compress-algo=none --no-encrypt-to
//
// Compression is disabled and --no-encrypt-to prevents a locally
// configured default recipient from silently gaining access to every
// secret. When agent use is enabled, --batch --use-agent are added so
// passphrase handling goes through the running gpg-agent instead of
// prompting per invocation.
//
// Failures (unknown identity, no secret key available) surface as
// ErrEncryptFailed or ErrDecryptFailed with gpg's stderr attached.
//
// The store engine only sees the Crypter interface; this package is the
// production implementation. Tests substitute an in-process fake.
package gpg
