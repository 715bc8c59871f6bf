package seqstore

// complement maps a nucleotide code to its complement, including the
// IUPAC ambiguity codes. Unmapped bytes complement to 'N'.
var complement [256]byte

func init() {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'K', 'M'},
		{'B', 'V'}, {'D', 'H'},
		{'S', 'S'}, {'W', 'W'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.a] = p.b
		complement[p.b] = p.a
		complement[p.a+'a'-'A'] = p.b + 'a' - 'A'
		complement[p.b+'a'-'A'] = p.a + 'a' - 'A'
	}
}

// RevComp returns the reverse complement of a nucleotide sequence.
// The input slice is not modified.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}
