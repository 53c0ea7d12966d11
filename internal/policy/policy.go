// Package policy contains declarative access-control conditions gating decryption.
package policy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/signer"
)

// ErrInvalidPolicy is returned when conditions are malformed.
var ErrInvalidPolicy = errors.New("invalid access control conditions")

// Supported chains.
const (
	ChainAmoy    = "amoy"
	ChainPolygon = "polygon"
)

// ConditionTypeEVMBasic is a condition over a standard contract call.
const ConditionTypeEVMBasic = "evmBasic"

// UserAddress is substituted with the address of decrypting party.
const UserAddress = ":userAddress"

var (
	chains      = []string{ChainAmoy, ChainPolygon}
	comparators = []string{"=", ">", ">=", "<", "<=", "contains", "!contains"}
	contracts   = []string{"ERC20", "ERC721", "ERC1155"}
)

// ReturnValueTest compares contract call result.
type ReturnValueTest struct {
	Comparator string `json:"comparator"`
	Value      string `json:"value"`
}

// Condition is one access-control condition.
type Condition struct {
	ConditionType        string          `json:"conditionType"`
	ContractAddress      string          `json:"contractAddress"`
	StandardContractType string          `json:"standardContractType"`
	Chain                string          `json:"chain"`
	Method               string          `json:"method"`
	Parameters           []string        `json:"parameters"`
	ReturnValueTest      ReturnValueTest `json:"returnValueTest"`
}

// Conditions is a list of conditions which all must hold.
type Conditions []Condition

// HoldsToken returns conditions requiring decrypting party to hold at least one token of contract.
func HoldsToken(contract, chain string) Conditions {
	return Conditions{
		{
			ConditionType:        ConditionTypeEVMBasic,
			ContractAddress:      contract,
			StandardContractType: "ERC20",
			Chain:                chain,
			Method:               "balanceOf",
			Parameters:           []string{UserAddress},
			ReturnValueTest: ReturnValueTest{
				Comparator: ">=",
				Value:      "1",
			},
		},
	}
}

// Chain returns chain name for network.
func Chain(testnet bool) string {
	if testnet {
		return ChainAmoy
	}
	return ChainPolygon
}

// IsChainSupported ...
func IsChainSupported(chain string) bool {
	return govalidator.IsIn(chain, chains...)
}

// Validate ...
func (c Conditions) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPolicy)
	}

	for i, v := range c {
		if err := v.validate(); err != nil {
			return fmt.Errorf("%w: condition %d: %s", ErrInvalidPolicy, i, err.Error())
		}
	}

	return nil
}

func (c Condition) validate() error {
	switch {
	case c.ConditionType != ConditionTypeEVMBasic:
		return fmt.Errorf("unsupported condition type %q", c.ConditionType)
	case !signer.IsAddressValid(c.ContractAddress):
		return fmt.Errorf("invalid contract address %q", c.ContractAddress)
	case !govalidator.IsIn(c.StandardContractType, contracts...):
		return fmt.Errorf("unsupported contract type %q", c.StandardContractType)
	case !IsChainSupported(c.Chain):
		return fmt.Errorf("unsupported chain %q", c.Chain)
	case c.Method == "":
		return errors.New("empty method")
	case !govalidator.IsIn(c.ReturnValueTest.Comparator, comparators...):
		return fmt.Errorf("unsupported comparator %q", c.ReturnValueTest.Comparator)
	}

	return nil
}

// Serialize returns canonical JSON of conditions.
func (c Conditions) Serialize() (string, error) {
	b, err := credential.Canonicalize(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize conditions: %w", err)
	}
	return string(b), nil
}

// Parse returns conditions from serialized form.
func Parse(s string) (Conditions, error) {
	var c Conditions
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPolicy, err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
