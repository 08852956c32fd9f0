package ledger

// ABI of the customer registry contract as deployed. Kept inline so the
// binding has no generated-code build step.
const registryABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "id", "type": "uint256"},
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "string", "name": "phone", "type": "string"},
			{"internalType": "string", "name": "email", "type": "string"},
			{"internalType": "string", "name": "homeAddress", "type": "string"},
			{"internalType": "string", "name": "card", "type": "string"}
		],
		"name": "registerCustomer",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "id", "type": "uint256"},
			{"internalType": "bool", "name": "active", "type": "bool"}
		],
		"name": "setStatus",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "customerId", "type": "uint256"},
			{"internalType": "bytes32", "name": "paymentHash", "type": "bytes32"},
			{"internalType": "uint256", "name": "amount", "type": "uint256"}
		],
		"name": "recordPayment",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "id", "type": "uint256"}
		],
		"name": "getCustomer",
		"outputs": [
			{"internalType": "uint256", "name": "", "type": "uint256"},
			{"internalType": "string", "name": "", "type": "string"},
			{"internalType": "string", "name": "", "type": "string"},
			{"internalType": "string", "name": "", "type": "string"},
			{"internalType": "string", "name": "", "type": "string"},
			{"internalType": "string", "name": "", "type": "string"},
			{"internalType": "bool", "name": "", "type": "bool"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "customerId", "type": "uint256"}
		],
		"name": "getHistory",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "customerId", "type": "uint256"},
					{"internalType": "bytes32", "name": "paymentHash", "type": "bytes32"},
					{"internalType": "uint256", "name": "amount", "type": "uint256"},
					{"internalType": "uint256", "name": "timestamp", "type": "uint256"}
				],
				"internalType": "struct CustomerRegistry.Payment[]",
				"name": "",
				"type": "tuple[]"
			}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

// ABI of the customer token (NFT) contract, reduced to the calls this
// backend makes.
const tokenABI = `[
	{
		"inputs": [
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "uint256", "name": "customerId", "type": "uint256"},
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "string", "name": "documentRef", "type": "string"}
		],
		"name": "mintCustomerToken",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "customerId", "type": "uint256"}
		],
		"name": "tokenByCustomer",
		"outputs": [
			{"internalType": "uint256", "name": "", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "tokenId", "type": "uint256"}
		],
		"name": "tokenMetadata",
		"outputs": [
			{"internalType": "uint256", "name": "customerId", "type": "uint256"},
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "string", "name": "documentRef", "type": "string"},
			{"internalType": "uint256", "name": "timestamp", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "tokenId", "type": "uint256"}
		],
		"name": "ownerOf",
		"outputs": [
			{"internalType": "address", "name": "", "type": "address"}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`
