package extract

// statementPrompt instructs the model on the statement schema semantics. The
// response itself is constrained separately via the JSON response schema.
const statementPrompt = `Analyze this document and decide whether it is a credit-card statement.

## FIRST: VALIDATION
- is_statement: true if the document is a real credit-card statement.
  If it is an advertisement, a promotion, another kind of document, or you
  cannot identify any line items, set false.

## IF IT IS A STATEMENT, EXTRACT:

### METADATA (metadata)
1. issuer: Name of the issuing bank. Examples: Interbank, Scotiabank, BCP, Falabella, BBVA
2. card_network: Only "Visa" or "Mastercard" (identify it from the logo or document text)
3. closing_date: Statement closing/cutoff date in YYYY-MM-DD format
4. Balances (look in the statement summary):
   - opening_balance_pen: Previous/opening balance in soles ("Saldo Anterior", "Deuda Anterior")
   - closing_balance_pen: Current/closing/payable balance in soles ("Total a Pagar", "Pago Total", "Nueva Deuda")
   - opening_balance_usd / closing_balance_usd: Same in dollars, if the card has a USD line
   - Leave a balance null when the card has no line in that currency

### LINE ITEMS (records)
Extract EVERY movement line you find:
1. date: ALWAYS the purchase/consumption date, NOT the processing date.
   If there are two date columns, use the purchase one.
   Convert from DD/MM/YYYY or DD/MM/YY to YYYY-MM-DD.
2. description: Exactly as it appears in the document
3. amount: charges POSITIVE, payments/credits NEGATIVE
4. currency: PEN (soles) or USD (dollars)
5. category: consumption, payment, interest, fee, insurance, adjustment, other

## IMPORTANT
- Do NOT include balances or totals as line items
- ONLY line-by-line movements
- Balances go in metadata, NOT in records`

// tripPrompt instructs the model on the taxi receipt schema semantics.
const tripPrompt = `Analyze this email from a taxi/ride service (Uber, Cabify, Beat, InDriver, DiDi, etc.)
and extract the trip information.

## FIRST: VALIDATION
- is_trip: true if the email is a receipt for a completed trip.
  If it is an advertisement, a promotion, a discount code, a survey, or does
  NOT describe one specific trip, set false.

## IF IT IS A TRIP RECEIPT, EXTRACT:
1. provider: Uber, Cabify, Beat, InDriver, DiDi, etc.
2. date: YYYY-MM-DD format
3. time: HH:MM format (24 hours)
4. origin: Pickup address or place
5. destination: Drop-off address or place
6. currency: PEN (Peruvian soles) or USD
7. price: Total amount charged (decimal number)

## IMPORTANT
- If a field cannot be determined, use a reasonable value or "Unknown"
- The price must be a number, without currency symbols
- In Peru the currency is usually PEN (soles)

EMAIL CONTENT:`
