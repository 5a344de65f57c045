package contract

// PaymasterABIJSON describes the read surface of the pool paymaster
// contract consumed by this library. findRootIndex is optional on older
// deployments; callers treat its failure as "not found".
const PaymasterABIJSON = `
[
	{
		"type": "function",
		"name": "getMessageHash",
		"stateMutability": "view",
		"inputs": [
			{
				"name": "userOp",
				"type": "tuple",
				"components": [
					{"name": "sender", "type": "address"},
					{"name": "nonce", "type": "uint256"},
					{"name": "initCode", "type": "bytes"},
					{"name": "callData", "type": "bytes"},
					{"name": "accountGasLimits", "type": "bytes32"},
					{"name": "preVerificationGas", "type": "uint256"},
					{"name": "gasFees", "type": "bytes32"},
					{"name": "paymasterAndData", "type": "bytes"},
					{"name": "signature", "type": "bytes"}
				]
			}
		],
		"outputs": [
			{"name": "messageHash", "type": "uint256"}
		]
	},
	{
		"type": "function",
		"name": "findRootIndex",
		"stateMutability": "view",
		"inputs": [
			{"name": "poolId", "type": "uint256"},
			{"name": "root", "type": "uint256"}
		],
		"outputs": [
			{"name": "index", "type": "uint32"},
			{"name": "found", "type": "bool"}
		]
	},
	{
		"type": "function",
		"name": "getPoolRootHistoryInfo",
		"stateMutability": "view",
		"inputs": [
			{"name": "poolId", "type": "uint256"}
		],
		"outputs": [
			{"name": "currentIndex", "type": "uint32"},
			{"name": "currentRoot", "type": "uint256"},
			{"name": "size", "type": "uint32"}
		]
	}
]`
