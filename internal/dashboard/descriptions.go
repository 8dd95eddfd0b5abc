package dashboard

// Dashboard blurbs, rendered as markdown on the index and dashboard pages.

const measlesDescription = `Reported **measles cases** per country and year, as published by the
WHO surveillance feed. Filter by country and year range, or set a minimum
case count to hide low-incidence rows.`

const hivDescription = `Key **HIV / AIDS** indicators per country and year: AIDS-related deaths,
new HIV infections, and people living with HIV. The minimum filter applies
to AIDS-related deaths (all ages).`

const malariaDescription = `**Malaria deaths** per country and year. Values marked as estimates in the
source feed are reduced to their leading number upstream; rows with no
usable number are excluded by the minimum filter rather than failing.`
