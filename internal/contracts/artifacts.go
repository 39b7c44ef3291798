package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Deployed contract addresses.
const (
	USDCAddress = "0x0a1d32E80B22A5D6D1Bfe58CE158684F8d8Cc125"
	JOEAddress  = "0xf599e56d3e259AD722C88824F1ff614F44B97a2d"
	AMMAddress  = "0x18426047a5f6775b102e1fE2581F4262068f9AeB"
)

// Artifact files bundled with the binary. Each token has its own ABI.
const (
	USDCArtifact = "USDCToken.json"
	JOEArtifact  = "JOEToken.json"
	AMMArtifact  = "AMM.json"
)

//go:embed artifacts/*.json
var artifactsFS embed.FS

// Descriptor is what is needed to bind a contract: where it lives and its ABI.
type Descriptor struct {
	Name    string
	Address common.Address
	ABI     abi.ABI
}

// Set groups the descriptors of the three contracts the dApp talks to.
type Set struct {
	USDC Descriptor
	JOE  Descriptor
	AMM  Descriptor
}

type artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
}

// ParseArtifact decodes a hardhat artifact and its ABI.
func ParseArtifact(r io.Reader) (string, abi.ABI, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return "", abi.ABI{}, errors.Wrap(err, "json.Decode")
	}
	if len(a.ABI) == 0 {
		return "", abi.ABI{}, errors.New("artifact has no abi")
	}

	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return "", abi.ABI{}, errors.Wrap(err, "abi.JSON")
	}
	if _, ok := parsed.Methods[""]; ok {
		return "", abi.ABI{}, errors.New("artifact has a function without a name")
	}
	return a.ContractName, parsed, nil
}

// LoadDescriptor builds a descriptor from an embedded artifact file.
func LoadDescriptor(file, address string) (Descriptor, error) {
	if !common.IsHexAddress(address) {
		return Descriptor{}, errors.Errorf("bad contract address %q", address)
	}

	f, err := artifactsFS.Open("artifacts/" + file)
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "artifactsFS.Open")
	}
	defer func() {
		_ = f.Close()
	}()

	name, parsed, err := ParseArtifact(f)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "parse %s", file)
	}

	return Descriptor{
		Name:    name,
		Address: common.HexToAddress(address),
		ABI:     parsed,
	}, nil
}

// DefaultSet loads the descriptors of the deployed contracts.
func DefaultSet() (Set, error) {
	usdc, err := LoadDescriptor(USDCArtifact, USDCAddress)
	if err != nil {
		return Set{}, err
	}
	joe, err := LoadDescriptor(JOEArtifact, JOEAddress)
	if err != nil {
		return Set{}, err
	}
	amm, err := LoadDescriptor(AMMArtifact, AMMAddress)
	if err != nil {
		return Set{}, err
	}
	return Set{USDC: usdc, JOE: joe, AMM: amm}, nil
}
