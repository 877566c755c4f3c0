//go:build ignore

// sign-action.go - Produce the X-Message / X-Signature headers a liquidity provider
// sends to the deposit, withdraw and fee claim endpoints.
//
// Usage:
//   go run scripts/sign-action.go -key 0x<private key> -action withdraw_liquidity
//
// Then:
//   curl -X POST http://localhost:8080/api/v1/liquidity/withdraw \
//     -H "X-Message: <message>" -H "X-Signature: <signature>" \
//     -d '{"shares":"1000000000000000000"}'

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/insured-bridge/pkg/app/api"
	"github.com/chainsafe/insured-bridge/pkg/auth"
)

var (
	keyHex = flag.String("key", "", "Provider private key (hex)")
	action = flag.String("action", api.ActionDepositLiquidity, "Action to authorize: deposit_liquidity, withdraw_liquidity or claim_fees")
)

func main() {
	flag.Parse()

	if *keyHex == "" {
		fmt.Println("Error: -key is required")
		os.Exit(1)
	}
	switch *action {
	case api.ActionDepositLiquidity, api.ActionWithdrawLiquidity, api.ActionClaimFees:
	default:
		fmt.Printf("Error: unknown action %q\n", *action)
		os.Exit(1)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(*keyHex, "0x"))
	if err != nil {
		fmt.Printf("Invalid private key: %v\n", err)
		os.Exit(1)
	}

	msg := auth.ActionMessage(*action, time.Now())
	sig, err := crypto.Sign(auth.ActionHash(msg).Bytes(), key)
	if err != nil {
		fmt.Printf("Failed to sign: %v\n", err)
		os.Exit(1)
	}
	sig[64] += 27

	fmt.Printf("Provider:    %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex())
	fmt.Printf("X-Message:   %s\n", msg)
	fmt.Printf("X-Signature: %s\n", hexutil.Encode(sig))
}
