package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"hash"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProgramAddress(t *testing.T) {
	// The typo in the seed key matches the upstream SDK test case the
	// expected outputs were taken from.
	seedKey, err := base58.Decode("SeedPubey1111111111111111111111111111111111")
	require.NoError(t, err)
	loader, err := base58.Decode("BPFLoader1111111111111111111111111111111111")
	require.NoError(t, err)

	_, err = CreateProgramAddress(loader, make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(loader, []byte("short seed"), make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(loader, make([]byte, maxSeedLength))
	assert.NoError(t, err)

	for _, tc := range []struct {
		seeds    [][]byte
		expected string
	}{
		{[][]byte{{}, {1}}, "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT"},
		{[][]byte{[]byte("☉")}, "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7"},
		{[][]byte{[]byte("Talking"), []byte("Squirrels")}, "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds"},
		{[][]byte{seedKey}, "GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K"},
	} {
		addr, err := CreateProgramAddress(loader, tc.seeds...)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(addr))
	}
}

type fixedHash struct {
	sum []byte
}

func (h *fixedHash) Write(p []byte) (int, error) { return len(p), nil }
func (h *fixedHash) Sum(_ []byte) []byte         { return h.sum }
func (h *fixedHash) Reset()                      {}
func (h *fixedHash) Size() int                   { return sha256.Size }
func (h *fixedHash) BlockSize() int              { return sha256.BlockSize }

func forceOnCurve(t *testing.T) {
	onCurve, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programHashCtor = func() hash.Hash {
		return &fixedHash{sum: onCurve}
	}
	t.Cleanup(func() {
		programHashCtor = sha256.New
	})
}

func TestCreateProgramAddress_OnCurve(t *testing.T) {
	forceOnCurve(t)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, err = CreateProgramAddress(program, []byte("Lil'"), []byte("Bits"))
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestFindProgramAddressAndBump_Exhausted(t *testing.T) {
	forceOnCurve(t)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	addr, bump, err := FindProgramAddressAndBump(program, []byte("config"))
	require.Error(t, err)
	assert.Nil(t, addr)
	assert.Zero(t, bump)

	var derivationErr *AddressDerivationError
	require.True(t, errors.As(err, &derivationErr))
	assert.True(t, errors.Is(err, ErrNoViableBump))
	assert.EqualValues(t, program, derivationErr.Program)
}

func TestFindProgramAddressAndBump_InvalidSeeds(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, _, err = FindProgramAddressAndBump(program, make([]byte, maxSeedLength+1))
	var derivationErr *AddressDerivationError
	require.True(t, errors.As(err, &derivationErr))
	assert.Equal(t, ErrMaxSeedLengthExceeded, derivationErr.Err)

	seeds := make([][]byte, maxSeeds)
	_, _, err = FindProgramAddressAndBump(program, seeds...)
	require.True(t, errors.As(err, &derivationErr))
	assert.Equal(t, ErrTooManySeeds, derivationErr.Err)

	_, _, err = FindProgramAddressAndBump(program[:10], []byte("config"))
	require.True(t, errors.As(err, &derivationErr))
	assert.Equal(t, ErrInvalidPublicKey, derivationErr.Err)
}

func TestFindProgramAddressAndBump_Consistent(t *testing.T) {
	for i := 0; i < 250; i++ {
		program, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		addr, bump, err := FindProgramAddressAndBump(program, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)

		recreated, err := CreateProgramAddress(program, []byte("Lil'"), []byte("Bits"), []byte{bump})
		require.NoError(t, err)
		assert.EqualValues(t, addr, recreated)

		// Every higher bump must have landed on the curve.
		for higher := int(bump) + 1; higher <= 255; higher++ {
			_, err := CreateProgramAddress(program, []byte("Lil'"), []byte("Bits"), []byte{byte(higher)})
			assert.Equal(t, ErrInvalidPublicKey, err)
		}
	}
}

func TestFindProgramAddressAndBump_SeedOrder(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	forward, _, err := FindProgramAddressAndBump(program, []byte("Lil'"), []byte("Bits"))
	require.NoError(t, err)
	backward, _, err := FindProgramAddressAndBump(program, []byte("Bits"), []byte("Lil'"))
	require.NoError(t, err)
	assert.NotEqual(t, forward, backward)

	// Seeds are hashed back to back: order matters, segment boundaries do not.
	joined, _, err := FindProgramAddressAndBump(program, []byte("Lil'Bits"))
	require.NoError(t, err)
	assert.Equal(t, forward, joined)
}

func TestFindProgramAddress_Reference(t *testing.T) {
	for _, r := range []struct {
		program  string
		expected string
	}{
		{"4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM", "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd"},
		{"8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh", "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S"},
		{"CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3", "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv"},
		{"GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP", "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev"},
		{"LX3EUdRUBUa3TbsYXLEUdj9J3prXkWXvLYSWyYyc2Jj", "9CqF6oTZtW5zSeoLnZRoQmj3s2tXGPqifM1W8Z8LVE1z"},
		{"21Z7hRtGQYRi8NocdZzhRuBRt9UZbFXbm1dKYvevp4vB", "9PPbRbNP3rqwzk16r7NDBzk1YDfo9EpWDWSqCYLn5eaF"},
	} {
		program, err := base58.Decode(r.program)
		require.NoError(t, err)

		actual, err := FindProgramAddress(program, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.Equal(t, r.expected, base58.Encode(actual))
	}
}

func TestFindProgramAddressAndBump_Concurrent(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	expected, expectedBump, err := FindProgramAddressAndBump(program, []byte("artist"), []byte("alice"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			addr, bump, err := FindProgramAddressAndBump(program, []byte("artist"), []byte("alice"))
			assert.NoError(t, err)
			assert.EqualValues(t, expected, addr)
			assert.Equal(t, expectedBump, bump)
		}()
	}
	wg.Wait()
}
