package esplora

import (
	"fmt"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/pkg/safe"
)

func convertTransaction(dto transactionDTO) (model.Transaction, error) {
	inputs := make([]model.Input, 0, len(dto.Vin))
	for _, vin := range dto.Vin {
		input := model.Input{}
		if vin.Prevout != nil {
			if vin.Prevout.Value < 0 {
				return model.Transaction{}, fmt.Errorf("negative input value %d in tx %s", vin.Prevout.Value, dto.TxID)
			}
			input.PrevoutAddress = vin.Prevout.ScriptPubKeyAddress
			input.ValueSats = vin.Prevout.Value
			input.ScriptType = vin.Prevout.ScriptPubKeyType
		}
		inputs = append(inputs, input)
	}

	outputs := make([]model.Output, 0, len(dto.Vout))
	for i, vout := range dto.Vout {
		index, err := safe.Uint32(i)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("convert output index in tx %s: %w", dto.TxID, err)
		}
		if vout.Value < 0 {
			return model.Transaction{}, fmt.Errorf("negative output value %d in tx %s", vout.Value, dto.TxID)
		}
		outputs = append(outputs, model.Output{
			Index:      index,
			Address:    vout.ScriptPubKeyAddress,
			ValueSats:  vout.Value,
			ScriptType: vout.ScriptPubKeyType,
		})
	}

	return model.Transaction{
		TxID:      dto.TxID,
		Inputs:    inputs,
		Outputs:   outputs,
		Confirmed: dto.Status.Confirmed,
	}, nil
}

func convertSpendStatus(dto outspendDTO) model.SpendStatus {
	return model.SpendStatus{
		Spent:        dto.Spent,
		SpendingTxID: dto.TxID,
		SpendingVin:  dto.Vin,
	}
}
