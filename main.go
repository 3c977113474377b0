package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/logrusorgru/aurora/v4"
	"github.com/neicnordic/bcrypt-pbkdf/internal/cli"
	applog "github.com/neicnordic/bcrypt-pbkdf/internal/log"
	"github.com/neicnordic/bcrypt-pbkdf/internal/selftest"
	"github.com/neicnordic/bcrypt-pbkdf/internal/version"
	"github.com/neicnordic/bcrypt-pbkdf/kdf"
	"github.com/neicnordic/bcrypt-pbkdf/kdf/bcrypt"
)

var date = "unknown"

const (
	derive    = "derive"
	check     = "selftest"
	calibrate = "calibrate"

	logPrefix   = "bpkdf"
	defaultSalt = 16
)

var deriveOptions struct {
	KDF          string `short:"k" long:"kdf" description:"Key derivation function" choice:"bcrypt" choice:"scrypt" choice:"pbkdf2_hmac_sha256" default:"bcrypt"`
	Rounds       int    `short:"r" long:"rounds" description:"Number of rounds" default:"16"`
	Length       int    `short:"l" long:"length" description:"Length of the derived key in bytes" default:"32"`
	Salt         string `short:"s" long:"salt" description:"Salt as hex string, random if omitted" value-name:"HEX"`
	PasswordFile string `short:"p" long:"password-file" description:"Read the password from the first line of FILE" value-name:"FILE"`
	Out          string `short:"o" long:"out" description:"Write the raw key to FILE instead of printing it" value-name:"FILE"`
	applog.Options
}

var deriveOptionsParser = flags.NewParser(&deriveOptions, flags.None)

var selftestOptions struct {
	applog.Options
}

var selftestOptionsParser = flags.NewParser(&selftestOptions, flags.None)

var calibrateOptions struct {
	Target time.Duration `short:"t" long:"target" description:"Time one derivation should take" default:"1s"`
	Length int           `short:"l" long:"length" description:"Length of the derived key in bytes" default:"32"`
	Probe  int           `long:"probe" description:"Rounds used for the measurement" default:"4"`
	applog.Options
}

var calibrateOptionsParser = flags.NewParser(&calibrateOptions, flags.None)

func init() {
	deriveOptionsParser.Name = derive
	selftestOptionsParser.Name = check
	calibrateOptionsParser.Name = calibrate
}

func main() {
	args := os.Args
	if len(args) == 1 || args[1] == "-h" || args[1] == "--help" {
		deriveOptionsParser.WriteHelp(os.Stdout)
		selftestOptionsParser.WriteHelp(os.Stdout)
		calibrateOptionsParser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if args[1] == "-v" || args[1] == "--version" {
		fmt.Println(aurora.Blue(version.Packagename + " " + version.String()))
		fmt.Println(aurora.Yellow(date))
		os.Exit(0)
	}
	defer applog.Flush()

	commandName := args[1]
	switch commandName {
	case derive:
		if _, err := deriveOptionsParser.Parse(); err != nil {
			log.Fatal(aurora.Red(err))
		}
		initLogging(&deriveOptions.Options)
		if err := runDerive(); err != nil {
			applog.Flush()
			log.Fatal(aurora.Red(err))
		}
	case check:
		if _, err := selftestOptionsParser.Parse(); err != nil {
			log.Fatal(aurora.Red(err))
		}
		initLogging(&selftestOptions.Options)
		if !runSelftest(os.Stdout) {
			applog.Flush()
			os.Exit(1)
		}
	case calibrate:
		if _, err := calibrateOptionsParser.Parse(); err != nil {
			log.Fatal(aurora.Red(err))
		}
		initLogging(&calibrateOptions.Options)
		if err := runCalibrate(os.Stdout); err != nil {
			applog.Flush()
			log.Fatal(aurora.Red(err))
		}
	default:
		log.Fatal(aurora.Red(fmt.Sprintf("command '%v' is not recognized", commandName)))
	}
}

func initLogging(opts *applog.Options) {
	if err := applog.InitOpts(opts, logPrefix); err != nil {
		log.Fatal(aurora.Red(err))
	}
}

func runDerive() error {
	k, err := kdf.Lookup(deriveOptions.KDF)
	if err != nil {
		return applog.Error(err)
	}
	salt, err := readSalt(deriveOptions.Salt)
	if err != nil {
		return applog.Error(err)
	}
	password, err := readPassword(deriveOptions.PasswordFile)
	if err != nil {
		return applog.Error(err)
	}

	applog.Infof("deriving %d bytes with %s, %d rounds, %d byte salt",
		deriveOptions.Length, deriveOptions.KDF, deriveOptions.Rounds, len(salt))
	start := time.Now()
	key, err := k.Derive(deriveOptions.Rounds, password, salt, deriveOptions.Length)
	clear(password)
	if err != nil {
		return applog.Error(err)
	}
	defer clear(key)
	applog.Debugf("derivation took %v", time.Since(start))

	if deriveOptions.Out == "" {
		fmt.Println(aurora.Yellow("salt: " + hex.EncodeToString(salt)))
		fmt.Println(hex.EncodeToString(key))
		return nil
	}
	if fileExists(deriveOptions.Out) && !cli.YesNoPrompt(fmt.Sprintf("File with name '%v' already exists. Overwrite?", deriveOptions.Out), false) {
		return nil
	}
	if err := os.WriteFile(deriveOptions.Out, key, 0600); err != nil {
		return applog.Error(err)
	}
	fmt.Println(aurora.Yellow("salt: " + hex.EncodeToString(salt)))
	fmt.Println(aurora.Green(fmt.Sprintf("Success! %v byte key written to %v", len(key), deriveOptions.Out)))
	return nil
}

// readSalt decodes a hex salt or generates a random one.
func readSalt(s string) ([]byte, error) {
	if s != "" {
		salt, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid salt: %v", err)
		}
		return salt, nil
	}
	salt := make([]byte, defaultSalt)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func readPassword(fileName string) ([]byte, error) {
	if fileName != "" {
		f, err := os.Open(fileName)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cli.ReadPassword(f)
	}
	if cli.IsTerminal(os.Stdin) {
		return cli.PasswordPrompt("Enter the password", true)
	}
	return cli.ReadPassword(os.Stdin)
}

func runSelftest(w io.Writer) bool {
	results, ok := selftest.Run()
	for _, r := range results {
		if r.OK() {
			fmt.Fprintln(w, aurora.Green("ok    "), r)
		} else {
			applog.Errorf("selftest failed: %v", r)
			fmt.Fprintln(w, aurora.Red("FAIL  "), r)
		}
	}
	return ok
}

func runCalibrate(w io.Writer) error {
	opts := calibrateOptions
	if opts.Probe < 2 {
		return applog.Errorf("probe rounds must be at least 2, got %d", opts.Probe)
	}
	if opts.Target <= 0 {
		return applog.Errorf("target must be positive, got %v", opts.Target)
	}
	out := make([]byte, opts.Length)
	start := time.Now()
	if err := bcrypt.Derive([]byte("calibrate"), []byte("calibrate"), opts.Probe, out); err != nil {
		return applog.Error(err)
	}
	elapsed := time.Since(start)
	rounds := recommendRounds(elapsed, opts.Probe, opts.Target)
	applog.Debugf("%d rounds for %d bytes took %v", opts.Probe, opts.Length, elapsed)

	fmt.Fprintf(w, "%d rounds for a %d byte key took %v\n", opts.Probe, opts.Length, elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, aurora.Green(fmt.Sprintf("Use --rounds %d for about %v per derivation", rounds, opts.Target)))
	return nil
}

// recommendRounds scales the probe linearly to the target; cost is linear in
// rounds. The result is never below 2.
func recommendRounds(elapsed time.Duration, probe int, target time.Duration) int {
	if elapsed <= 0 {
		elapsed = 1
	}
	rounds := int(int64(target) * int64(probe) / int64(elapsed))
	if rounds < 2 {
		return 2
	}
	return rounds
}

func fileExists(fileName string) bool {
	info, err := os.Stat(fileName)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
