// Package selftest checks the bcrypt_pbkdf implementation against the
// published OpenBSD vectors.
package selftest

import (
	"encoding/hex"
	"fmt"

	"github.com/neicnordic/bcrypt-pbkdf/kdf/bcrypt"
)

// Vector is a known answer for bcrypt_pbkdf.
type Vector struct {
	Password []byte
	Salt     []byte
	Rounds   int
	Key      string // hex
}

// Vectors are the OpenBSD regress vectors used by the self test.
var Vectors = []Vector{
	{[]byte("password"), []byte("salt"), 4, "5bbf0cc293587f1c3635555c27796598d47e579071bf427e9d8fbe842aba34d9"},
	{[]byte{0}, []byte("salt"), 4, "6051be18c2f4f82cbf0efee5471b4bb9"},
	{[]byte("password"), []byte{0}, 4, "c12b566235eee04c212598970a579a67"},
	{[]byte("password\x00"), []byte("salt\x00"), 4, "7410e44cf4fa07bfaac8a928b1727fac001375e7bf7384370f48efd121743050"},
}

// Result is the outcome of checking one vector.
type Result struct {
	Vector Vector
	Got    string
	Err    error
}

// OK reports whether the vector was reproduced.
func (r Result) OK() bool {
	return r.Err == nil && r.Got == r.Vector.Key
}

func (r Result) String() string {
	name := fmt.Sprintf("password=%q salt=%q rounds=%d len=%d",
		r.Vector.Password, r.Vector.Salt, r.Vector.Rounds, len(r.Vector.Key)/2)
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", name, r.Err)
	case !r.OK():
		return fmt.Sprintf("%s: got %s, want %s", name, r.Got, r.Vector.Key)
	}
	return name
}

// Check runs v and reports the outcome.
func Check(v Vector) Result {
	want, err := hex.DecodeString(v.Key)
	if err != nil {
		return Result{Vector: v, Err: err}
	}
	out := make([]byte, len(want))
	if err := bcrypt.Derive(v.Password, v.Salt, v.Rounds, out); err != nil {
		return Result{Vector: v, Err: err}
	}
	return Result{Vector: v, Got: hex.EncodeToString(out)}
}

// Run checks all Vectors and returns the results plus whether all passed.
func Run() (results []Result, ok bool) {
	ok = true
	for _, v := range Vectors {
		r := Check(v)
		ok = ok && r.OK()
		results = append(results, r)
	}
	return results, ok
}
