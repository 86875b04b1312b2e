// Package sdk exposes the four public operations spec §6 names:
// setup, execute, prove, verify. It is a thin, dependency-free façade
// over pkg/executor and pkg/machine, the shape a CLI or an embedding
// host both call through.
package sdk

import (
	"github.com/oisee/bf-zkvm/pkg/executor"
	"github.com/oisee/bf-zkvm/pkg/isa"
	"github.com/oisee/bf-zkvm/pkg/machine"
)

// Setup parses source and generates the (ProvingKey, VerifyingKey)
// pair (spec §6: "setup(source: &str) -> (ProvingKey, VerifyingKey)").
func Setup(source string) (*machine.ProvingKey, *machine.VerifyingKey, error) {
	return machine.Setup(source)
}

// Execute runs source against stdin and returns its stdout, without
// generating any proof (spec §6: "execute(source, stdin) -> bytes").
func Execute(source string, stdin []byte) ([]byte, error) {
	program, err := isa.Parse(source)
	if err != nil {
		return nil, err
	}
	return executor.Output(program, stdin)
}

// Prove generates a Proof for one run of the proving key's program
// against stdin (spec §6: "prove(pk, stdin) -> Proof").
func Prove(pk *machine.ProvingKey, stdin []byte) (*machine.Proof, error) {
	return machine.Prove(pk, stdin)
}

// Verify checks a proof against a verifying key (spec §6:
// "verify(proof, vk) -> Result<(), VerificationError>").
func Verify(proof *machine.Proof, vk *machine.VerifyingKey) error {
	return machine.Verify(proof, vk)
}
