// mkfixture writes deterministic synthetic claim interchanges for demos and
// tests, as a plain file plus a gzip copy.
// Usage: go run ./cmd/mkfixture --out testdata --claims 25 --seed 7
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
)

var (
	lastNames  = []string{"SMITH", "JOHNSON", "WILLIAMS", "BROWN", "JONES", "GARCIA", "MILLER", "DAVIS"}
	firstNames = []string{"JAMES", "MARY", "ROBERT", "PATRICIA", "JOHN", "JENNIFER", "MICHAEL", "LINDA"}
	procCodes  = []string{"99213", "99214", "85025", "80053", "71046", "93000", "36415", "90471"}
	diagCodes  = []string{"E119", "I10", "J069", "M545", "K219", "F419", "Z0000", "N390"}
	cities     = []string{"SPRINGFIELD", "RIVERSIDE", "FRANKLIN", "GREENVILLE", "CLINTON"}
	states     = []string{"CA", "TX", "NY", "FL", "OH"}
	facilities = []string{"GENERAL HOSPITAL", "COMMUNITY MEDICAL CENTER", "REGIONAL CLINIC"}
)

func main() {
	outDir := flag.String("out", "testdata", "output directory")
	prefix := flag.String("prefix", "claims", "output file prefix")
	claims := flag.Int("claims", 25, "number of claims to generate")
	seed := flag.Int64("seed", 1, "random seed (a fixed seed gives identical output)")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	content := generate(rng, *claims)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	plainPath := filepath.Join(*outDir, *prefix+".edi")
	if err := os.WriteFile(plainPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", plainPath, err)
		os.Exit(1)
	}

	gzPath := plainPath + ".gz"
	if err := writeGzip(gzPath, content); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", gzPath, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d claims to %s and %s\n", *claims, plainPath, gzPath)
}

func generate(rng *rand.Rand, count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		writeClaim(&b, rng, i)
	}
	return b.String()
}

func writeClaim(b *strings.Builder, rng *rand.Rand, seq int) {
	fmt.Fprintf(b, "CLM*%d*%.2f*24:B:1~\n", 10000+seq, float64(rng.Intn(100000))/100)

	last := pick(rng, lastNames)
	fmt.Fprintf(b, "NM1*IL*1*%s*%s****MI*%09d~\n", last, pick(rng, firstNames), rng.Intn(1_000_000_000))
	fmt.Fprintf(b, "NM1*QC*1*%s*%s~\n", last, pick(rng, firstNames))

	fmt.Fprintf(b, "N3*%d %s ST~\n", 100+rng.Intn(9900), pick(rng, lastNames))
	fmt.Fprintf(b, "N4*%s*%s*%05d~\n", pick(rng, cities), pick(rng, states), 10000+rng.Intn(89999))

	year := 1940 + rng.Intn(70)
	fmt.Fprintf(b, "DMG*D8*%04d%02d%02d*%s~\n", year, 1+rng.Intn(12), 1+rng.Intn(28), pick(rng, []string{"M", "F"}))

	b.WriteString("HI")
	for n := 1 + rng.Intn(3); n > 0; n-- {
		fmt.Fprintf(b, "*ABK:%s", pick(rng, diagCodes))
	}
	b.WriteString("~\n")

	// Occasionally report from a service facility.
	if seq%7 == 3 {
		fmt.Fprintf(b, "NM1*77*2*%s*****XX*%010d~\n", pick(rng, facilities), rng.Int63n(10_000_000_000))
		fmt.Fprintf(b, "N3*%d %s AVE~\n", 1+rng.Intn(999), pick(rng, lastNames))
		fmt.Fprintf(b, "N4*%s*%s*%05d~\n", pick(rng, cities), pick(rng, states), 10000+rng.Intn(89999))
	}

	for n := 1 + rng.Intn(3); n > 0; n-- {
		fmt.Fprintf(b, "SV1*HC:%s*%.2f*UN*%d~\n", pick(rng, procCodes), float64(rng.Intn(50000))/100, 1+rng.Intn(4))
	}

	// Sprinkle in malformed and unsupported segments.
	if seq%11 == 5 {
		b.WriteString("SV1*HC:99999*NOT_A_NUMBER~\n")
	}
	if seq%13 == 6 {
		b.WriteString("REF*D9*UNSUPPORTED~\n")
	}

	fmt.Fprintf(b, "DTP*472*D8*2023%02d%02d~\n", 1+rng.Intn(12), 1+rng.Intn(28))
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func writeGzip(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	gz := pgzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		f.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
