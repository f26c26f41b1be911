package consts

// TransactionFilterLabel keys the single transaction filter in the
// subscribe request. Updates matching the filter carry it back in their
// Filters list, which is how the pipeline tells its own traffic apart.
const TransactionFilterLabel = "pumpFun"
