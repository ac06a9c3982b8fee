/*
Package motif finds ShK toxin domains in peptide sequences. An ShK domain is six
cysteines with the spacing

	C x(1+) C x(1+) C x(1-50) C x(3) C x(2) C

as described by Rangaraju et al. (doi:10.1074/jbc.M109.071266) and SMART
(SM00254), where x is any amino acid.
*/
package motif

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/EdRice4/Macrander/pkg/alphabet"
)

// MaxUpstream is the most residues allowed between the third and fourth cysteines
const MaxUpstream = 50

var shk = regexp.MustCompile(`C[A-Z]+C[A-Z]+C[A-Z]{1,` + strconv.Itoa(MaxUpstream) + `}C[A-Z]{3}C[A-Z]{2}C`)

// Domain is one match in a peptide. Start and End are 1-based and inclusive.
type Domain struct {
	Start int
	End   int
	Seq   string
}

// Scan returns the non-overlapping ShK domains in seq, leftmost first. seq may
// be in either case; the returned domains are upper case. An error is
// returned if seq contains anything other than amino acid codes and a
// terminal stop.
func Scan(seq string) ([]Domain, error) {
	if err := alphabet.ValidatePeptide(seq); err != nil {
		return nil, err
	}
	upper := strings.ToUpper(seq)

	domains := make([]Domain, 0)
	for _, loc := range shk.FindAllStringIndex(upper, -1) {
		domains = append(domains, Domain{Start: loc[0] + 1, End: loc[1], Seq: upper[loc[0]:loc[1]]})
	}
	return domains, nil
}

// Contains reports whether seq has at least one ShK domain
func Contains(seq string) (bool, error) {
	domains, err := Scan(seq)
	if err != nil {
		return false, err
	}
	return len(domains) > 0, nil
}

// Mark returns seq with a '|' either side of each domain. domains must come
// from Scan(seq).
func Mark(seq string, domains []Domain) string {
	var sb strings.Builder
	sb.Grow(len(seq) + 2*len(domains))
	last := 0
	for _, d := range domains {
		sb.WriteString(seq[last : d.Start-1])
		sb.WriteByte('|')
		sb.WriteString(seq[d.Start-1 : d.End])
		sb.WriteByte('|')
		last = d.End
	}
	sb.WriteString(seq[last:])
	return sb.String()
}
