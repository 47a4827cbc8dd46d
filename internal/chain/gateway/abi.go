package gateway

// Interface schemas of the two deployed contracts. The contracts themselves
// are external and authoritative; only their call surface is described here.

const accessControlABI = `[
  {"type":"function","name":"getRole","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"name":"role","type":"uint8"}]},
  {"type":"function","name":"hasRole","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"},{"name":"role","type":"uint8"}],
   "outputs":[{"name":"ok","type":"bool"}]},
  {"type":"function","name":"grantRole","stateMutability":"nonpayable",
   "inputs":[{"name":"account","type":"address"},{"name":"role","type":"uint8"}],
   "outputs":[]},
  {"type":"event","name":"RoleGranted","anonymous":false,
   "inputs":[{"name":"account","type":"address","indexed":true},
             {"name":"role","type":"uint8","indexed":false}]}
]`

const supplyChainABI = `[
  {"type":"function","name":"registerProduct","stateMutability":"nonpayable",
   "inputs":[{"name":"name","type":"string"},{"name":"batchId","type":"string"},
             {"name":"origin","type":"string"},{"name":"metadataHash","type":"string"}],
   "outputs":[{"name":"productId","type":"uint256"}]},
  {"type":"function","name":"getProduct","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"id","type":"uint256"},{"name":"name","type":"string"},
              {"name":"batchId","type":"string"},{"name":"producer","type":"address"},
              {"name":"createdAt","type":"uint256"},{"name":"origin","type":"string"},
              {"name":"metadataHash","type":"string"},{"name":"currentOwner","type":"address"},
              {"name":"status","type":"uint8"},{"name":"isAuthentic","type":"bool"}]},
  {"type":"function","name":"getProductJourney","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"journey","type":"string[]"}]},
  {"type":"function","name":"getCompleteProvenance","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"provenance","type":"string"}]},
  {"type":"function","name":"getTransferHistory","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"transfers","type":"tuple[]","components":[
     {"name":"from","type":"address"},{"name":"to","type":"address"},
     {"name":"timestamp","type":"uint256"},{"name":"shipmentDetails","type":"string"}]}]},
  {"type":"function","name":"getVerificationHistory","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"verifications","type":"tuple[]","components":[
     {"name":"verifier","type":"address"},{"name":"timestamp","type":"uint256"},
     {"name":"verificationType","type":"uint8"},{"name":"result","type":"uint256"},
     {"name":"notes","type":"string"}]}]},
  {"type":"function","name":"getProductCount","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"count","type":"uint256"}]},
  {"type":"function","name":"isProductAuthentic","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[{"name":"authentic","type":"bool"}]},
  {"type":"function","name":"transferOwnership","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"to","type":"address"},
             {"name":"shipmentDetails","type":"string"}],"outputs":[]},
  {"type":"function","name":"batchTransferOwnership","stateMutability":"nonpayable",
   "inputs":[{"name":"productIds","type":"uint256[]"},{"name":"to","type":"address"},
             {"name":"shipmentDetails","type":"string"}],"outputs":[]},
  {"type":"function","name":"updateStatus","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"newStatus","type":"uint8"}],
   "outputs":[]},
  {"type":"function","name":"updateProductMetadata","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"metadataHash","type":"string"}],
   "outputs":[]},
  {"type":"function","name":"verifyAuthenticity","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"notes","type":"string"}],
   "outputs":[{"name":"isValid","type":"bool"}]},
  {"type":"function","name":"performQualityCheck","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"qualityScore","type":"uint8"},
             {"name":"notes","type":"string"},{"name":"metadataHash","type":"string"}],
   "outputs":[]},
  {"type":"function","name":"checkCompliance","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"compliant","type":"bool"},
             {"name":"metadataHash","type":"string"}],"outputs":[]},
  {"type":"event","name":"ProductRegistered","anonymous":false,
   "inputs":[{"name":"productId","type":"uint256","indexed":false},
             {"name":"producer","type":"address","indexed":true},
             {"name":"batchId","type":"string","indexed":false}]},
  {"type":"event","name":"OwnershipTransferred","anonymous":false,
   "inputs":[{"name":"productId","type":"uint256","indexed":false},
             {"name":"from","type":"address","indexed":true},
             {"name":"to","type":"address","indexed":true}]}
]`
