package client

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *App, args []string) error
}

var commands = map[string]command{
	"store":              {summary: "encrypt and store data under an existing key", run: runStore},
	"store-new":          {summary: "create a key, then encrypt and store data with it", run: runStoreNew},
	"get":                {summary: "load and decrypt data", run: runGet},
	"remove":             {summary: "remove stored data", run: runRemove},
	"has":                {summary: "report whether data (and biometric access) exists", run: runHas},
	"enable-biometric":   {summary: "protect a key's long secret with biometrics", run: runEnableBiometric},
	"get-biometric":      {summary: "load and decrypt data after biometric confirmation", run: runGetBiometric},
	"disable-biometric":  {summary: "revoke biometric access for a key", run: runDisableBiometric},
	"enrollment-changed": {summary: "simulate a biometric enrollment change", run: runEnrollmentChanged},
	"version":            {summary: "print build information", run: runVersion},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commandFlags holds every flag a command may declare.
type commandFlags struct {
	storageKey string
	keyID      string
	secret     string
	longSecret string
	data       string
	biometric  bool
	showSecret bool
}

func (a *App) flagSet(name string) (*flag.FlagSet, *commandFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs, &commandFlags{}
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: -%s", ErrMissingArgument, name)
	}
	return nil
}

// unlock checks that exactly one of the secret flags is set.
func (f *commandFlags) unlock(allowBiometric bool) error {
	set := 0
	for _, on := range []bool{f.secret != "", f.longSecret != "", allowBiometric && f.biometric} {
		if on {
			set++
		}
	}
	switch {
	case set == 0 && allowBiometric:
		return fmt.Errorf("%w: one of -secret, -long-secret or -biometric", ErrMissingArgument)
	case set == 0:
		return fmt.Errorf("%w: one of -secret or -long-secret", ErrMissingArgument)
	case set > 1:
		return fmt.Errorf("%w: use only one way to unlock the key", ErrConflictingArguments)
	}
	return nil
}

func runStore(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("store")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	fs.StringVar(&f.keyID, "id", "", "key id")
	fs.StringVar(&f.secret, "secret", "", "user secret")
	fs.StringVar(&f.longSecret, "long-secret", "", "long secret")
	fs.BoolVar(&f.biometric, "biometric", false, "unlock with biometrics")
	fs.StringVar(&f.data, "data", "", "data to store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}
	if err := requireFlag("id", f.keyID); err != nil {
		return err
	}
	if err := f.unlock(true); err != nil {
		return err
	}

	s := a.services.EncryptedStorage
	data := []byte(f.data)

	switch {
	case f.secret != "":
		return s.Store(ctx, f.secret, f.storageKey, data, f.keyID)
	case f.longSecret != "":
		return s.StoreWithLongSecret(ctx, f.longSecret, f.storageKey, data, f.keyID)
	default:
		c, err := a.decryptCipher(ctx, f.keyID)
		if err != nil {
			return err
		}
		return s.StoreViaBiometric(ctx, f.storageKey, data, f.keyID, c)
	}
}

func runStoreNew(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("store-new")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	fs.StringVar(&f.secret, "secret", "", "user secret for the new key")
	fs.StringVar(&f.data, "data", "", "data to store")
	fs.BoolVar(&f.biometric, "biometric", false, "also enable biometric protection for the new key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}
	if err := requireFlag("secret", f.secret); err != nil {
		return err
	}

	s := a.services.EncryptedStorage
	created, err := s.StoreWithNewKey(ctx, f.secret, f.storageKey, []byte(f.data))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "keyid: %s\nlongsecret: %s\n", created.KeyID, created.LongSecret)

	if !f.biometric {
		return nil
	}
	c, err := a.encryptCipher(ctx, created.KeyID)
	if err != nil {
		return err
	}
	if err = s.EnableBiometricWithLongSecret(ctx, created.KeyID, created.LongSecret, c); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "biometric protection enabled")
	return nil
}

func runGet(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("get")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	fs.StringVar(&f.keyID, "id", "", "key id")
	fs.StringVar(&f.secret, "secret", "", "user secret")
	fs.StringVar(&f.longSecret, "long-secret", "", "long secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}
	if err := requireFlag("id", f.keyID); err != nil {
		return err
	}
	if err := f.unlock(false); err != nil {
		return err
	}

	s := a.services.EncryptedStorage

	var (
		data []byte
		err  error
	)
	if f.secret != "" {
		data, err = s.Get(ctx, f.secret, f.storageKey, f.keyID)
	} else {
		data, err = s.GetWithLongSecret(ctx, f.longSecret, f.storageKey, f.keyID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", data)
	return nil
}

func runRemove(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("remove")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}

	return a.services.EncryptedStorage.Remove(ctx, f.storageKey)
}

func runHas(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("has")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	fs.StringVar(&f.keyID, "id", "", "key id; also report biometric availability")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}

	s := a.services.EncryptedStorage
	fmt.Fprintf(a.out, "value: %t\n", s.HasValue(ctx, f.storageKey))
	if f.keyID != "" {
		fmt.Fprintf(a.out, "biometric: %t\n", s.HasBiometricProtectedValue(ctx, f.storageKey, f.keyID))
	}
	return nil
}

func runEnableBiometric(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("enable-biometric")
	fs.StringVar(&f.keyID, "id", "", "key id")
	fs.StringVar(&f.secret, "secret", "", "user secret")
	fs.StringVar(&f.longSecret, "long-secret", "", "long secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("id", f.keyID); err != nil {
		return err
	}
	if err := f.unlock(false); err != nil {
		return err
	}

	c, err := a.encryptCipher(ctx, f.keyID)
	if err != nil {
		return err
	}

	s := a.services.EncryptedStorage
	if f.secret != "" {
		return s.EnableBiometric(ctx, f.keyID, f.secret, c)
	}
	return s.EnableBiometricWithLongSecret(ctx, f.keyID, f.longSecret, c)
}

func runGetBiometric(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("get-biometric")
	fs.StringVar(&f.storageKey, "key", "", "storage key")
	fs.StringVar(&f.keyID, "id", "", "key id")
	fs.BoolVar(&f.showSecret, "show-long-secret", false, "also print the recovered long secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", f.storageKey); err != nil {
		return err
	}
	if err := requireFlag("id", f.keyID); err != nil {
		return err
	}

	c, err := a.decryptCipher(ctx, f.keyID)
	if err != nil {
		return err
	}

	res, err := a.services.EncryptedStorage.GetViaBiometric(ctx, f.storageKey, f.keyID, c)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", res.Data)
	if f.showSecret {
		fmt.Fprintf(a.out, "longsecret: %s\n", res.LongSecret)
	}
	return nil
}

func runDisableBiometric(ctx context.Context, a *App, args []string) error {
	fs, f := a.flagSet("disable-biometric")
	fs.StringVar(&f.keyID, "id", "", "key id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("id", f.keyID); err != nil {
		return err
	}

	return a.services.EncryptedStorage.RemoveLongSecret(ctx, f.keyID)
}

func runEnrollmentChanged(ctx context.Context, a *App, args []string) error {
	fs, _ := a.flagSet("enrollment-changed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.services.Keystore.EnrollmentChanged(ctx); err != nil {
		return fmt.Errorf("simulate enrollment change: %w", err)
	}
	fmt.Fprintln(a.out, "biometric-bound secret keys invalidated")
	return nil
}

func runVersion(_ context.Context, a *App, _ []string) error {
	fmt.Fprintf(a.out, "Build version: %s\n", a.buildInfo.BuildVersion())
	fmt.Fprintf(a.out, "Build date: %s\n", a.buildInfo.BuildDate())
	fmt.Fprintf(a.out, "Build commit: %s\n", a.buildInfo.BuildCommit())
	return nil
}

func (a *App) encryptCipher(ctx context.Context, keyID string) (keystore.Cipher, error) {
	c, err := a.services.EncryptedStorage.GetEncryptCipher(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if err = a.authenticate(ctx, c, keyID); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *App) decryptCipher(ctx context.Context, keyID string) (keystore.Cipher, error) {
	c, err := a.services.EncryptedStorage.GetDecryptCipher(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if err = a.authenticate(ctx, c, keyID); err != nil {
		return nil, err
	}
	return c, nil
}
